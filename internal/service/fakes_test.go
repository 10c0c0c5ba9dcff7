package service_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"time"
)

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// fakeGraph stands in for graph.facebook.com.
type fakeGraph struct {
	server *httptest.Server

	mu    sync.Mutex
	calls []string

	exchangeError string
	pagesJSON     string
	igLinks       map[string]string
	igLookupFail  map[string]bool
	insightsFail  map[string]bool
}

func newFakeGraph() *fakeGraph {
	f := &fakeGraph{
		pagesJSON:    `[{"id":"page-1","name":"Lens & Launch","access_token":"page-token-1"}]`,
		igLinks:      map[string]string{"page-1": "ig-1"},
		igLookupFail: map[string]bool{},
		insightsFail: map[string]bool{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	return f
}

func (f *fakeGraph) Close() { f.server.Close() }

func (f *fakeGraph) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeGraph) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls = append(f.calls, r.URL.Path)
	f.mu.Unlock()

	q := r.URL.Query()
	path := strings.Trim(r.URL.Path, "/")
	object := strings.Split(path, "/")[0]

	switch {
	case path == "oauth/access_token":
		if f.exchangeError != "" {
			writeJSON(w, http.StatusBadRequest, fmt.Sprintf(`{"error":{"message":%q,"type":"OAuthException","code":100}}`, f.exchangeError))
			return
		}
		if q.Get("grant_type") == "fb_exchange_token" {
			writeJSON(w, http.StatusOK, `{"access_token":"long-user-token","expires_in":5184000}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"access_token":"short-user-token","expires_in":3600}`)

	case path == "me/accounts":
		writeJSON(w, http.StatusOK, `{"data":`+f.pagesJSON+`}`)

	case strings.HasSuffix(path, "/insights"):
		if f.insightsFail[object] {
			writeJSON(w, http.StatusBadRequest, `{"error":{"message":"(#100) The value must be a valid insights metric","code":100}}`)
			return
		}
		if strings.HasPrefix(object, "page-") {
			writeJSON(w, http.StatusOK, `{"data":[
				{"name":"page_impressions","period":"day","values":[{"value":100},{"value":50}]},
				{"name":"page_impressions_unique","period":"day","values":[{"value":60},{"value":"40"}]},
				{"name":"page_fan_adds","period":"day","values":[{"value":3},{"value":{"organic":1}}]},
				{"name":"page_post_engagements","period":"day","values":[]}
			]}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"data":[
			{"name":"reach","period":"day","values":[{"value":30},{"value":20}]},
			{"name":"impressions","period":"day","values":[{"value":70},{"value":30}]},
			{"name":"profile_views","period":"day","values":[{"value":7}]}
		]}`)

	case q.Get("fields") == "instagram_business_account":
		if f.igLookupFail[object] {
			writeJSON(w, http.StatusInternalServerError, `{"error":{"message":"temporarily unavailable"}}`)
			return
		}
		if ig, ok := f.igLinks[object]; ok {
			writeJSON(w, http.StatusOK, fmt.Sprintf(`{"id":%q,"instagram_business_account":{"id":%q}}`, object, ig))
			return
		}
		writeJSON(w, http.StatusOK, fmt.Sprintf(`{"id":%q}`, object))

	case q.Get("fields") == "fan_count":
		writeJSON(w, http.StatusOK, `{"id":"page-1","fan_count":1500}`)

	default:
		writeJSON(w, http.StatusOK, `{"id":"ig-1","username":"lensandlaunch","followers_count":820,"media_count":40}`)
	}
}

// fakeTikTok stands in for open.tiktokapis.com.
type fakeTikTok struct {
	server *httptest.Server

	mu          sync.Mutex
	calls       []string
	grants      []url.Values
	bearerCalls []string

	tokenBody   string
	refreshBody string
	userStatus  int
	userBody    string
	videosBody  string
}

func newFakeTikTok() *fakeTikTok {
	f := &fakeTikTok{
		tokenBody:   `{"access_token":"act-1","refresh_token":"rft-1","open_id":"open-1","expires_in":86400}`,
		refreshBody: `{"access_token":"act-2","refresh_token":"rft-2","open_id":"open-1","expires_in":86400}`,
		userStatus:  http.StatusOK,
		userBody:    `{"data":{"user":{"open_id":"open-1","display_name":"Lens","follower_count":900,"following_count":12,"likes_count":4000,"video_count":31}},"error":{"code":"ok"}}`,
		videosBody:  `{"data":{"videos":[],"has_more":false},"error":{"code":"ok"}}`,
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	return f
}

func (f *fakeTikTok) Close() { f.server.Close() }

func (f *fakeTikTok) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// bearers returns the Authorization headers seen by the data endpoints.
func (f *fakeTikTok) bearers() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.bearerCalls...)
}

func (f *fakeTikTok) tokenGrants() []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]url.Values(nil), f.grants...)
}

func (f *fakeTikTok) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, r.URL.Path)

	switch r.URL.Path {
	case "/oauth/token/":
		_ = r.ParseForm()
		f.grants = append(f.grants, r.PostForm)
		if r.PostForm.Get("grant_type") == "refresh_token" {
			writeJSON(w, http.StatusOK, f.refreshBody)
			return
		}
		writeJSON(w, http.StatusOK, f.tokenBody)
	case "/user/info/":
		f.bearerCalls = append(f.bearerCalls, r.Header.Get("Authorization"))
		writeJSON(w, f.userStatus, f.userBody)
	case "/video/list/":
		f.bearerCalls = append(f.bearerCalls, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, f.videosBody)
	default:
		writeJSON(w, http.StatusNotFound, `{}`)
	}
}

func videoJSON(id string, created time.Time, plays, views int64) string {
	return fmt.Sprintf(`{"id":%q,"create_time":%d,"share_url":"https://www.tiktok.com/@lens/video/%s","play_count":%d,"view_count":%d,"like_count":10,"comment_count":5,"share_count":5}`,
		id, created.Unix(), id, plays, views)
}
