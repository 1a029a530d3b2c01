package fulfillment

import (
	"context"
	"os"
	"time"
)

type docsRequest struct {
	Question string `json:"pregunta"`
}

type docsResponse struct {
	Answer string `json:"respuesta"`
}

// IDocsClient talks to the document-retrieval collaborator, used when the
// local document cache cannot resolve a question.
type IDocsClient interface {
	GenerateAnswer(ctx context.Context, question string) (string, error)
}

type docsClient struct {
	baseClient
}

func NewDocsClient() IDocsClient {
	baseURL := os.Getenv("DOCS_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8003"
	}

	return &docsClient{
		baseClient: newBaseClient(baseURL, 30*time.Second),
	}
}

func (c *docsClient) GenerateAnswer(ctx context.Context, question string) (string, error) {
	var res docsResponse
	if err := c.postJSON(ctx, "/responder", docsRequest{Question: question}, &res); err != nil {
		return "", err
	}
	return res.Answer, nil
}
