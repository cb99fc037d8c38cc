package tsemitter

import "strings"

// The runtime support surface is fixed boilerplate: it is emitted verbatim,
// never derived by the compiler, so generated schemas and clients always
// compile against the same envelope, transport, and error types.
const runtimeTS = `// Generated runtime support. Do not edit.

export type ApiResponse<T> = {
  status: number;
  headers: Headers;
  data: T;
};

export type Handler<Body, PathParams, QueryParams, Response> = (ctx: {
  body: Body;
  pathParams: PathParams;
  queryParams: QueryParams;
}) => Promise<Response> | Response;

export class ApiError extends Error {
  constructor(message: string) {
    super(message);
    this.name = new.target.name;
  }
}

export class TransportError extends ApiError {
  readonly status?: number;
  constructor(message: string, status?: number) {
    super(message);
    this.status = status;
  }
}

export class ValidationError extends ApiError {}
export class ConfigurationError extends ApiError {}

export type RequestOptions = {
  method: string;
  path: string;
  baseUrl: string;
  body?: unknown;
  pathParams?: Record<string, unknown>;
  query?: Record<string, unknown>;
  headers?: Record<string, string>;
};

function interpolatePath(path: string, params?: Record<string, unknown>): string {
  return path.replace(/\{([^}]+)\}/g, (_, key) => {
    const value = params?.[key];
    if (value === undefined) {
      throw new ValidationError("missing path parameter: " + key);
    }
    return encodeURIComponent(String(value));
  });
}

export async function request<T = unknown>(opts: RequestOptions): Promise<ApiResponse<T>> {
  const url = new URL(interpolatePath(opts.path, opts.pathParams), opts.baseUrl);
  for (const [key, value] of Object.entries(opts.query ?? {})) {
    if (value !== undefined) {
      url.searchParams.set(key, String(value));
    }
  }

  const response = await fetch(url.toString(), {
    method: opts.method.toUpperCase(),
    headers: {
      "content-type": "application/json",
      ...opts.headers,
    },
    body: opts.body === undefined ? undefined : JSON.stringify(opts.body),
  });

  if (!response.ok) {
    throw new TransportError("http " + response.status + ": " + opts.method + " " + opts.path, response.status);
  }
  const contentType = response.headers.get("content-type") ?? "";
  if (!contentType.includes("application/json")) {
    throw new TransportError("unexpected content type: " + contentType, response.status);
  }
  const data = (await response.json()) as T;
  return { status: response.status, headers: response.headers, data };
}
`

func renderRuntime() string { return runtimeTS }

func renderPackageJSON(name string) string {
	return strings.TrimSpace(`
{
  "name": "` + name + `",
  "version": "0.1.0",
  "private": true,
  "type": "module",
  "dependencies": {
    "zod": "^3.22.0"
  },
  "devDependencies": {
    "typescript": "^5.3.0"
  }
}
`) + "\n"
}

func renderReadme(name, title string) string {
	var b strings.Builder
	b.WriteString("# " + name + "\n\n")
	if title != "" {
		b.WriteString("Generated zod validators, handler types, and client stubs for " + title + ".\n\n")
	} else {
		b.WriteString("Generated zod validators, handler types, and client stubs.\n\n")
	}
	b.WriteString("Files:\n\n")
	b.WriteString("- `schemas.ts`: named zod schemas and derived types\n")
	b.WriteString("- `handlers.ts`: handler type declarations per operation\n")
	b.WriteString("- `client.ts`: client function stubs (when servers are declared)\n")
	b.WriteString("- `runtime.ts`: fixed request/response envelope and transport\n")
	return b.String()
}
