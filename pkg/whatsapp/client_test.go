package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
)

var testCreds = Credentials{
	AccountID:     "1029384756",
	BusinessID:    "555",
	AccessToken:   "EAAG-test-token",
	PhoneNumberID: "777",
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL, AppID: "app", AppSecret: "secret"}, nil)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestSubmit(t *testing.T) {
	var got createTemplateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("got method %s, want POST", r.Method)
		}
		if r.URL.Path != "/v24.0/1029384756/message_templates" {
			t.Errorf("got path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer EAAG-test-token" {
			t.Errorf("got Authorization %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		writeJSON(t, w, http.StatusOK, map[string]string{"id": "987654321", "status": "PENDING", "category": "UTILITY"})
	})

	tmpl := &models.Template{
		Name:     "order_update",
		Category: models.CategoryUtility,
		Language: "en_US",
		Header:   models.NoHeader(),
		Body:     models.TemplateBody{Text: "Your order shipped"},
	}
	id, err := client.Submit(context.Background(), tmpl, testCreds)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if id != "987654321" {
		t.Errorf("got id %q, want 987654321", id)
	}
	if got.Name != "order_update" || got.Category != "UTILITY" || got.Language != "en_US" {
		t.Errorf("got request %+v", got)
	}
	if len(got.Components) != 1 || got.Components[0].Type != ComponentBody {
		t.Errorf("got components %+v", got.Components)
	}
}

func TestSubmitEncodingErrorSkipsNetwork(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	_, err := client.Submit(context.Background(), &models.Template{Name: "empty"}, testCreds)
	if !errors.Is(err, ErrEncoding) {
		t.Fatalf("got %v, want ErrEncoding", err)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("got %d requests, want 0", n)
	}
}

func TestSubmitRemoteRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, map[string]any{
			"error": map[string]any{
				"message":       "Template name already exists",
				"type":          "OAuthException",
				"code":          100,
				"error_subcode": 2388024,
				"fbtrace_id":    "Axyz",
			},
		})
	})

	tmpl := &models.Template{Name: "dup", Body: models.TemplateBody{Text: "x"}}
	_, err := client.Submit(context.Background(), tmpl, testCreds)
	if !errors.Is(err, ErrRemoteRejected) {
		t.Fatalf("got %v, want ErrRemoteRejected", err)
	}
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("got %T, want *RemoteError", err)
	}
	if remoteErr.Message != "Template name already exists" || remoteErr.Code != 100 || remoteErr.Subcode != 2388024 {
		t.Errorf("got %+v", remoteErr)
	}
	if errors.Is(err, ErrTransport) {
		t.Error("remote rejection must not match ErrTransport")
	}
}

func TestFailureWithoutPayloadIsTransport(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"html gateway page", http.StatusBadGateway, "<html>upstream down</html>"},
		{"empty body", http.StatusServiceUnavailable, ""},
		{"json without error", http.StatusInternalServerError, `{"success":false}`},
		{"bare bad request", http.StatusBadRequest, "bad request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := client.Remove(context.Background(), "x", testCreds)
			if !errors.Is(err, ErrTransport) {
				t.Fatalf("got %v, want ErrTransport", err)
			}
			if errors.Is(err, ErrRemoteRejected) {
				t.Error("failure without an error payload must not match ErrRemoteRejected")
			}
			if IsNotFound(err) {
				t.Error("failure without an error payload must not read as not found")
			}
		})
	}
}

func TestRemoveBareNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.Remove(context.Background(), "gone", testCreds)
	if !IsNotFound(err) {
		t.Fatalf("got %v, want not found", err)
	}
	if errors.Is(err, ErrTransport) {
		t.Error("bare 404 must not match ErrTransport")
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	client := NewClient(Options{BaseURL: baseURL}, nil)
	_, err := client.ListAll(context.Background(), testCreds, 10)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("got %v, want ErrTransport", err)
	}
	if errors.Is(err, ErrRemoteRejected) {
		t.Error("transport failure must not match ErrRemoteRejected")
	}
}

func TestRemove(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("got method %s, want DELETE", r.Method)
		}
		if name := r.URL.Query().Get("name"); name != "promo_july" {
			t.Errorf("got name %q", name)
		}
		writeJSON(t, w, http.StatusOK, map[string]bool{"success": true})
	})

	if err := client.Remove(context.Background(), "promo_july", testCreds); err != nil {
		t.Fatalf("Remove: %v", err)
	}
}

func TestRemoveNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, map[string]any{
			"error": map[string]any{"message": "Message template not found", "code": 100},
		})
	})

	err := client.Remove(context.Background(), "gone", testCreds)
	if !IsNotFound(err) {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestListAllFollowsCursor(t *testing.T) {
	pages := map[string]templatePage{}
	first := templatePage{Data: []RemoteTemplate{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}}
	first.Paging.Cursors.After = "c1"
	second := templatePage{Data: []RemoteTemplate{{ID: "3", Name: "c"}}}
	pages[""] = first
	pages["c1"] = second

	var limits []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		limits = append(limits, r.URL.Query().Get("limit"))
		writeJSON(t, w, http.StatusOK, pages[r.URL.Query().Get("after")])
	})

	got, err := client.ListAll(context.Background(), testCreds, 2)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != 3 || got[2].Name != "c" {
		t.Errorf("got %+v", got)
	}
	if strings.Join(limits, ",") != "2,2" {
		t.Errorf("got limits %v", limits)
	}
}

func TestListAllStopsAtCeiling(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		size, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		page := templatePage{}
		for i := 0; i < size; i++ {
			page.Data = append(page.Data, RemoteTemplate{ID: fmt.Sprintf("%d-%d", n, i), Name: fmt.Sprintf("t_%d_%d", n, i)})
		}
		page.Paging.Cursors.After = fmt.Sprintf("cursor-%d", n)
		writeJSON(t, w, http.StatusOK, page)
	})

	tests := []struct {
		pageSize  int
		wantCalls int32
	}{
		{100, 5},
		{75, 7},
		{1, 500},
		{1000, 1},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.pageSize), func(t *testing.T) {
			atomic.StoreInt32(&calls, 0)
			got, err := client.ListAll(context.Background(), testCreds, tt.pageSize)
			if err != nil {
				t.Fatalf("ListAll: %v", err)
			}
			if len(got) != MaxListedTemplates {
				t.Errorf("got %d templates, want %d", len(got), MaxListedTemplates)
			}
			if n := atomic.LoadInt32(&calls); n != tt.wantCalls {
				t.Errorf("got %d requests, want %d", n, tt.wantCalls)
			}
		})
	}
}

func TestListAllStopsOnRepeatedCursor(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		page := templatePage{Data: []RemoteTemplate{{ID: "1", Name: "same"}}}
		page.Paging.Cursors.After = "stuck"
		writeJSON(t, w, http.StatusOK, page)
	})

	if _, err := client.ListAll(context.Background(), testCreds, 1); err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("got %d requests, want 2", n)
	}
}

func TestExchangeCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/v24.0/oauth/access_token" || q.Get("client_id") != "app" || q.Get("code") != "abc" {
			t.Errorf("unexpected request %s", r.URL)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"access_token": "tok", "token_type": "bearer", "expires_in": 5183944})
	})

	token, err := client.ExchangeCode(context.Background(), "abc")
	if err != nil {
		t.Fatalf("ExchangeCode: %v", err)
	}
	if token.AccessToken != "tok" || token.ExpiresIn != 5183944 {
		t.Errorf("got %+v", token)
	}
}

func TestExchangeCodeRequiresAppCredentials(t *testing.T) {
	client := NewClient(Options{}, nil)
	if _, err := client.ExchangeCode(context.Background(), "abc"); !errors.Is(err, ErrAppNotConfigured) {
		t.Fatalf("got %v, want ErrAppNotConfigured", err)
	}
}

func TestPermissionDialogURL(t *testing.T) {
	client := NewClient(Options{AppID: "42"}, nil)
	got := client.PermissionDialogURL("https://app.example/dashboard", "user-1")
	if !strings.HasPrefix(got, "https://www.facebook.com/v24.0/dialog/oauth?") {
		t.Errorf("got %s", got)
	}
	if !strings.Contains(got, "whatsapp_business_management") || !strings.Contains(got, "state=user-1") {
		t.Errorf("got %s", got)
	}
}
