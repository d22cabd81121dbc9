package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRequiresAPIKey(t *testing.T) {
	client := NewGeminiClient("", "")
	_, err := client.Generate("Describe your work style")
	assert.Error(t, err)
}

func TestGenerateParsesCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  I prefer collaborative teams.  "}]}}]}`))
	}))
	defer server.Close()

	client := NewGeminiClient("test-key", "gemini-1.5-pro")
	client.HTTPClient = server.Client()

	// Point the request at the test server by rewriting the host.
	client.HTTPClient.Transport = rewriteHost(server.URL)

	answer, err := client.Generate("Describe your ideal team")
	assert.NoError(t, err)
	assert.Equal(t, "I prefer collaborative teams.", answer)
}

// rewriteHost redirects every request to the test server regardless of the
// URL the client built.
func rewriteHost(target string) http.RoundTripper {
	return roundTripFunc(func(req *http.Request) (*http.Response, error) {
		rewritten := strings.TrimPrefix(target, "http://")
		req.URL.Scheme = "http"
		req.URL.Host = rewritten
		return http.DefaultTransport.RoundTrip(req)
	})
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestBuildAnswerPrompt(t *testing.T) {
	profile := sampleProfile()
	prompt := BuildAnswerPrompt(profile, "What motivates you?")

	assert.Contains(t, prompt, "What motivates you?")
	assert.Contains(t, prompt, "Jordan Fields")
	assert.Contains(t, prompt, "first person")
}
