package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"

	"study-planner-api/models"
	"study-planner-api/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	testZone = time.FixedZone("test", 2*60*60)
	testNow  = time.Date(2026, time.October, 14, 9, 30, 0, 0, testZone)
)

func fixedClock() time.Time { return testNow }

type fakeChat struct {
	mu      sync.Mutex
	reply   string
	err     error
	lastReq openai.ChatCompletionRequest
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastReq = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		ID: "chatcmpl-test",
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.reply},
		}},
	}, nil
}

func newAssistant(chat services.ChatClient) *services.Assistant {
	cache := services.NewCacheService(time.Minute, time.Minute)
	return services.NewAssistantWithClient(chat, "gpt-4o-mini", 800, cache, time.Minute)
}

func disabledAssistant() *services.Assistant {
	return newAssistant(nil)
}

type fakeSharer struct {
	objects map[string][]byte
	putErr  error
}

func (f *fakeSharer) PutObject(_ context.Context, objectPath string, data []byte, _ string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[objectPath] = data
	return nil
}

func (f *fakeSharer) GetPresignedURL(_ context.Context, objectPath string) (*models.PresignedURLResponse, error) {
	return &models.PresignedURLResponse{
		URL:       "https://minio.test/" + objectPath,
		ExpiresAt: testNow.Add(15 * time.Minute),
		FileName:  objectPath[strings.LastIndex(objectPath, "/")+1:],
	}, nil
}

func newMemoryStore() *services.MemoryStore {
	return services.NewMemoryStore(services.NewCacheService(time.Minute, time.Minute))
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doUpload(t *testing.T, r http.Handler, path, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func daysOut(n int) string {
	return testNow.AddDate(0, 0, n).Format("2006-01-02")
}

var errUpstream = errors.New("upstream failure")
