package lang

import "testing"

func evalRouteSource(t *testing.T, src string, params map[string]string) (RouteResult, []string) {
	t.Helper()
	program, err := Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(program.Routes) != 1 {
		t.Fatalf("expected exactly one route, got %d", len(program.Routes))
	}
	env := NewEnvironment()
	for name, value := range params {
		env.Set(name, NewString(value))
	}
	eval := NewEvaluator(env)
	result := eval.EvalRoute(program.Routes[0])
	return result, eval.Diagnostics()
}

func TestEvalPlainTextResponse(t *testing.T) {
	result, _ := evalRouteSource(t, `route "/hello" { response "Hello, World!" }`, nil)
	if result.ContentType != "text/plain" {
		t.Errorf("content type = %q, want text/plain", result.ContentType)
	}
	if result.Body != "Hello, World!\n" {
		t.Errorf("body = %q, want %q", result.Body, "Hello, World!\n")
	}
}

func TestEvalArithmeticAndConcat(t *testing.T) {
	src := `route "/calc" { x = 10  y = 5  response "sum=" + (x + y) }`
	result, _ := evalRouteSource(t, src, nil)
	if result.Body != "sum=15\n" {
		t.Errorf("body = %q, want %q", result.Body, "sum=15\n")
	}
}

func TestEvalParamBinding(t *testing.T) {
	src := `route "/user/:id" { response "id=" + id }`
	result, _ := evalRouteSource(t, src, map[string]string{"id": "42"})
	if result.Body != "id=42\n" {
		t.Errorf("body = %q, want %q", result.Body, "id=42\n")
	}
}

func TestEvalHTMLResponse(t *testing.T) {
	src := `route "/u" { name = "Alice"  response html { name } }`
	result, _ := evalRouteSource(t, src, nil)
	if result.ContentType != "text/html" {
		t.Errorf("content type = %q, want text/html", result.ContentType)
	}
	want := "<html><body>Alice</body></html>\n"
	if result.Body != want {
		t.Errorf("body = %q, want %q", result.Body, want)
	}
}

func TestEvalUndefinedVariableYieldsEmptyAndDiagnostic(t *testing.T) {
	src := `route "/a" { y = x }`
	result, diags := evalRouteSource(t, src, nil)
	if result.Body != "" {
		t.Errorf("body = %q, want empty", result.Body)
	}
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for undefined variable")
	}
	found := false
	for _, d := range diags {
		if d == `undefined variable "x"` {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %v, want one mentioning undefined variable x", diags)
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	src := `route "/z" { x = 1 / 0  response x }`
	result, diags := evalRouteSource(t, src, nil)
	if result.Body != "\n" {
		t.Errorf("body = %q, want %q", result.Body, "\n")
	}
	if len(diags) == 0 {
		t.Fatal("expected a division-by-zero diagnostic")
	}
}

func TestEnvironmentIsolationAcrossRequests(t *testing.T) {
	setSrc := `route "/set" { x = 1  response x }`
	getSrc := `route "/get" { response x }`

	first, _ := evalRouteSource(t, setSrc, nil)
	if first.Body != "1\n" {
		t.Fatalf("first body = %q, want %q", first.Body, "1\n")
	}

	second, diags := evalRouteSource(t, getSrc, nil)
	if second.Body != "" {
		t.Errorf("second body = %q, want empty (no leaked state)", second.Body)
	}
	if len(diags) == 0 {
		t.Fatal("expected undefined-variable diagnostic on second request")
	}
}

func TestEvalComparisonOperators(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1 < 2", "true"},
		{"2 < 1", "false"},
		{"1 == 1", "true"},
		{"1 != 2", "true"},
		{"2 >= 2", "true"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			src := `route "/p" { response ` + tt.expr + ` }`
			result, _ := evalRouteSource(t, src, nil)
			want := tt.want + "\n"
			if result.Body != want {
				t.Errorf("body = %q, want %q", result.Body, want)
			}
		})
	}
}

func TestEvalNonNumericOperandsYieldNull(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"subtraction", `"abc" - 5`},
		{"multiplication", `"abc" * 5`},
		{"division", `"abc" / 5`},
		{"less than", `"abc" < 5`},
		{"greater than", `"abc" > 5`},
		{"less or equal", `"abc" <= 5`},
		{"greater or equal", `"abc" >= 5`},
		{"bool plus number", `(1 < 2) + 5`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := `route "/p" { response ` + tt.expr + ` }`
			result, _ := evalRouteSource(t, src, nil)
			if result.Body != "\n" {
				t.Errorf("body = %q, want %q (null rendering)", result.Body, "\n")
			}
		})
	}
}
