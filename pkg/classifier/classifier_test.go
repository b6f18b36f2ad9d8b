package classifier_test

import (
	"strings"
	"testing"

	"github.com/NeuralTrust/TakeALook/pkg/classifier"
	"github.com/NeuralTrust/TakeALook/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categories(findings []classifier.Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Category)
	}
	return out
}

func TestClassify_Scenarios(t *testing.T) {
	t.Run("http 404", func(t *testing.T) {
		res := classifier.Classify("2024-01-01 GET /x 404 OK\n")
		require.Len(t, res.Findings, 1)
		f := res.Findings[0]
		assert.Equal(t, "404", f.Category)
		assert.Equal(t, rules.SeverityMedium, f.Severity)
		assert.Equal(t, 1, f.LineNumber)
		assert.Equal(t, "Resource Not Found: 2024-01-01 GET /x 404 OK", f.Message)
	})

	t.Run("fatal then warn", func(t *testing.T) {
		res := classifier.Classify("FATAL: disk full\nWARN: retry\n")
		require.Len(t, res.Findings, 2)
		assert.Equal(t, "FATAL_ERROR", res.Findings[0].Category)
		assert.Equal(t, rules.SeverityCritical, res.Findings[0].Severity)
		assert.Equal(t, 1, res.Findings[0].LineNumber)
		assert.Equal(t, "WARNING", res.Findings[1].Category)
		assert.Equal(t, rules.SeverityLow, res.Findings[1].Severity)
		assert.Equal(t, 2, res.Findings[1].LineNumber)
	})

	t.Run("sql injection", func(t *testing.T) {
		res := classifier.Classify("SQL INJECTION attempt blocked\n")
		require.Len(t, res.Findings, 1)
		assert.Equal(t, "SQL_INJECTION", res.Findings[0].Category)
		assert.Equal(t, rules.SeverityCritical, res.Findings[0].Severity)
		assert.Equal(t, 1, res.Findings[0].LineNumber)
		assert.Equal(t, "SQL INJECTION attempt blocked", res.Findings[0].Message)
	})

	t.Run("blank lines are numbered", func(t *testing.T) {
		content := strings.Repeat("\n", 500) + " 500 Internal Server Error "
		res := classifier.Classify(content)
		require.NotEmpty(t, res.Findings)
		assert.Equal(t, "500", res.Findings[0].Category)
		for _, f := range res.Findings {
			assert.Equal(t, 501, f.LineNumber)
		}
		// "Error" also trips the case-insensitive application rule.
		assert.Equal(t, []string{"500", "APPLICATION_ERROR"}, categories(res.Findings))
		assert.Equal(t, 501, res.Lines)
	})

	t.Run("connection failed with timeout", func(t *testing.T) {
		res := classifier.Classify("Connection failed: timeout waiting for DB\n")
		require.Len(t, res.Findings, 2)
		assert.Equal(t, []string{"CONNECTION_ERROR", "TIMEOUT"}, categories(res.Findings))
		for _, f := range res.Findings {
			assert.Equal(t, rules.SeverityMedium, f.Severity)
			assert.Equal(t, 1, f.LineNumber)
		}
	})
}

func TestClassify_EmptyInput(t *testing.T) {
	res := classifier.Classify("")
	assert.NotNil(t, res.Findings)
	assert.Empty(t, res.Findings)
	assert.Equal(t, classifier.Counts{}, res.Counts)
	assert.Equal(t, 0, res.Counts.Total())
}

func TestClassify_NonInterference(t *testing.T) {
	res := classifier.Classify("GET /api 500 DATABASE ERROR after SQL INJECTION attempt")
	cats := categories(res.Findings)
	assert.Equal(t, []string{"500", "APPLICATION_ERROR", "DATABASE_ERROR", "SQL_INJECTION"}, cats)
	for _, f := range res.Findings {
		assert.Equal(t, 1, f.LineNumber)
	}
}

func TestClassify_FamilyOrderWithinLine(t *testing.T) {
	res := classifier.Classify("XSS ATTACK WARNING 403 denied")
	require.Len(t, res.Findings, 3)
	assert.Equal(t, rules.FamilyHTTP, res.Findings[0].Family)
	assert.Equal(t, rules.FamilyApplication, res.Findings[1].Family)
	assert.Equal(t, rules.FamilySecurity, res.Findings[2].Family)
}

func TestClassify_RepeatedMatchesAreKept(t *testing.T) {
	res := classifier.Classify("x 404 y\nx 404 y\nx 404 y")
	require.Len(t, res.Findings, 3)
	for i, f := range res.Findings {
		assert.Equal(t, i+1, f.LineNumber)
		assert.Equal(t, "404", f.Category)
	}
}

func TestClassify_Determinism(t *testing.T) {
	content := "a 401 b\nERROR timeout\r\nbrute force from 10.0.0.1\rFAILED LOGIN for root\n\nout of memory"
	first := classifier.Classify(content)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, classifier.Classify(content))
	}
}

func TestClassify_LineCountInvariant(t *testing.T) {
	inputs := []string{
		"",
		"\n",
		"ERROR\n",
		"ERROR",
		"a\r\nb 404 c\r\nERROR\r\n",
		"old mac\rERROR\rlast",
		strings.Repeat("WARN x\n", 1000),
	}
	for _, in := range inputs {
		res := classifier.Classify(in)
		lines := classifier.CountLines(in)
		assert.Equal(t, lines, res.Lines)
		for _, f := range res.Findings {
			assert.LessOrEqual(t, f.LineNumber, lines)
			assert.GreaterOrEqual(t, f.LineNumber, 1)
		}
	}
}

func TestClassify_LineEndings(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		lines    int
		wantLine int
	}{
		{"lf", "ok\nFATAL here\n", 3, 2},
		{"crlf", "ok\r\nFATAL here\r\n", 3, 2},
		{"cr", "ok\rFATAL here\r", 3, 2},
		{"mixed", "ok\r\n\rFATAL here", 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := classifier.Classify(tt.content)
			assert.Equal(t, tt.lines, res.Lines)
			require.Len(t, res.Findings, 1)
			assert.Equal(t, tt.wantLine, res.Findings[0].LineNumber)
			assert.Equal(t, "FATAL here", res.Findings[0].Message)
		})
	}
}

func TestClassify_CRLFStatusCodeAtLineEnd(t *testing.T) {
	res := classifier.Classify("GET /missing 404\r\nnext\r\n")
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "404", res.Findings[0].Category)
	assert.Equal(t, "Resource Not Found: GET /missing 404", res.Findings[0].Message)
}

func TestClassify_TallyConsistency(t *testing.T) {
	content := strings.Join([]string{
		"GET / 200 ok",
		"GET /a 404 ",
		"POST /b 500 DATABASE ERROR",
		"warning: slow",
		"SECURITY VIOLATION by user",
		"Exception in thread main",
	}, "\n")
	res := classifier.Classify(content)
	assert.Equal(t, classifier.Tally(res.Findings), res.Counts)
	assert.Equal(t, len(res.Findings), res.Counts.Total())
	assert.Equal(t, 1, res.Counts.Low)
}

func TestClassify_LargeInput(t *testing.T) {
	var b strings.Builder
	line := "2024-01-01T00:00:00Z GET /api/v1/items 200 12ms user=42 region=eu-west-1\n"
	for b.Len() < 10*1024*1024 {
		b.WriteString(line)
	}
	b.WriteString("GET /x 503 upstream down")

	res := classifier.Classify(b.String())
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "503", res.Findings[0].Category)
	assert.Equal(t, res.Lines, res.Findings[0].LineNumber)
}

func TestNew_CustomRuleSet(t *testing.T) {
	onlySecurity := make([]rules.Rule, 0)
	for _, r := range rules.All() {
		if r.Family == rules.FamilySecurity {
			onlySecurity = append(onlySecurity, r)
		}
	}
	c := classifier.New(onlySecurity)
	res := c.Classify("ERROR brute force 500 ")
	assert.Equal(t, []string{"BRUTE_FORCE"}, categories(res.Findings))
}

func TestResult_Categories(t *testing.T) {
	res := classifier.Classify("ERROR\nx 404 y ERROR\n")
	assert.Equal(t, []string{"APPLICATION_ERROR", "404"}, res.Categories())
}
