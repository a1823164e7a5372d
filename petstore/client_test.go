package petstore

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type capturingLogger struct {
	lines []string
}

func (c *capturingLogger) Printf(message string, args ...interface{}) {
	c.lines = append(c.lines, message)
}

func samplePet() Pet {
	return Pet{
		ID:        42,
		Category:  &Category{ID: ldvalue.NewOptionalInt(1), Name: "Dogs"},
		Name:      "Rex",
		PhotoURLs: []string{"https://picsum.photos/id/1/200/200"},
		Tags:      []Tag{{ID: ldvalue.NewOptionalInt(7), Name: "loyal"}},
		Status:    StatusAvailable,
	}
}

func TestCreatePetSendsJSONWithAPIKey(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithJSONResponse(samplePet(), nil))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client := NewClient(ClientOptions{BaseURL: server.URL + "/", APIKey: "special-key"})

		resp, err := client.CreatePet(samplePet())
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		r := <-requests
		assert.Equal(t, "POST", r.Request.Method)
		assert.Equal(t, "/pet", r.Request.URL.Path)
		assert.Equal(t, "special-key", r.Request.Header.Get(APIKeyHeader))
		assert.Equal(t, "application/json", r.Request.Header.Get("Content-Type"))

		var sent map[string]interface{}
		require.NoError(t, json.Unmarshal(r.Body, &sent))
		assert.Equal(t, "Rex", sent["name"])
		assert.Equal(t, "available", sent["status"])
		assert.Equal(t, []interface{}{"https://picsum.photos/id/1/200/200"}, sent["photoUrls"])

		created, err := resp.DecodePet()
		require.NoError(t, err)
		assert.Equal(t, samplePet(), created)
	})
}

func TestGetPetDoesNotSendAPIKey(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(404))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client := NewClient(ClientOptions{BaseURL: server.URL, APIKey: "special-key"})

		resp, err := client.GetPet(42)
		require.NoError(t, err, "a 404 is an answer, not an error")
		assert.Equal(t, 404, resp.StatusCode)

		r := <-requests
		assert.Equal(t, "GET", r.Request.Method)
		assert.Equal(t, "/pet/42", r.Request.URL.Path)
		assert.Empty(t, r.Request.Header.Get(APIKeyHeader))
	})
}

func TestRawIDsAreEscaped(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(400))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client := NewClient(ClientOptions{BaseURL: server.URL})

		resp, err := client.DeletePetByRawID("abc/def")
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		r := <-requests
		assert.Equal(t, "DELETE", r.Request.Method)
		assert.Equal(t, "/pet/abc%2Fdef", r.Request.URL.EscapedPath())
	})
}

func TestUpdateAndFindByStatus(t *testing.T) {
	pets := []Pet{samplePet()}
	handler, requests := httphelpers.RecordingHandler(
		httphelpers.HandlerForMethod("PUT",
			httphelpers.HandlerWithJSONResponse(samplePet(), nil),
			httphelpers.HandlerWithJSONResponse(pets, nil)),
	)
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client := NewClient(ClientOptions{BaseURL: server.URL, APIKey: "k"})

		resp, err := client.UpdatePet(samplePet())
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		r := <-requests
		assert.Equal(t, "PUT", r.Request.Method)
		assert.Equal(t, "k", r.Request.Header.Get(APIKeyHeader))

		resp, err = client.FindByStatus(StatusPending)
		require.NoError(t, err)
		found, err := resp.DecodePets()
		require.NoError(t, err)
		assert.Len(t, found, 1)
		r = <-requests
		assert.Equal(t, "/pet/findByStatus", r.Request.URL.Path)
		assert.Equal(t, "pending", r.Request.URL.Query().Get("status"))
	})
}

func TestRawBodiesAreSentUnchanged(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithResponse(400, nil,
		[]byte(`{"code":400,"type":"unknown","message":"bad input"}`)))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client := NewClient(ClientOptions{BaseURL: server.URL})

		resp, err := client.CreateRaw("dog-12345-invalid")
		require.NoError(t, err)
		apiResp, err := resp.DecodeAPIResponse()
		require.NoError(t, err)
		assert.Equal(t, APIResponse{Code: 400, Type: "unknown", Message: "bad input"}, apiResp)
		assert.Equal(t, "dog-12345-invalid", string((<-requests).Body))

		resp, err = client.UpdateRaw(EmptyBody)
		require.NoError(t, err)
		assert.Equal(t, "{}", string((<-requests).Body))
	})
}

func TestClientLogsAttempts(t *testing.T) {
	logger := &capturingLogger{}
	httphelpers.WithServer(httphelpers.HandlerWithStatus(200), func(server *httptest.Server) {
		client := NewClient(ClientOptions{BaseURL: server.URL}).WithLogger(logger)

		_, err := client.GetPet(1)
		require.NoError(t, err)
		assert.Len(t, logger.lines, 2)
	})
}

func TestConnectionErrorIsReturned(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	client := NewClient(ClientOptions{BaseURL: server.URL})

	_, err := client.GetPet(1)
	assert.Error(t, err)
}

func TestDecodeErrorIncludesBody(t *testing.T) {
	resp := &Response{StatusCode: 500, Body: []byte("oops")}

	_, err := resp.DecodePet()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500 Internal Server Error")
	assert.Contains(t, err.Error(), "oops")
}
