package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"pet-social/internal/adapters/auth/jwtauth"
	"pet-social/internal/adapters/uploads/localstore"
	"pet-social/internal/router"
)

func newServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()
	if opts.BcryptCost == 0 {
		opts.BcryptCost = 4
	}
	ts := httptest.NewServer(router.NewRouter(opts))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_SocialFlow(t *testing.T) {
	ts := newServer(t, router.Options{})

	ana := register(t, ts.URL, "ana@example.com", "ana")
	bob := register(t, ts.URL, "bob@example.com", "bob")

	// 1) Cada uno crea su mascota
	milo := createPet(t, ts.URL, ana, map[string]any{"name": "Milo", "species": "dog", "gender": "male"})
	luna := createPet(t, ts.URL, bob, map[string]any{"name": "Luna", "species": "dog", "gender": "female"})

	// 2) Sin auth no hay feed
	if st, _ := doReq(t, ts.URL, "GET", "/feed", "", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 feed without auth, got %d", st)
	}

	// 3) Ana sigue a Luna; no puede seguir a su propia mascota
	if st, body := doReq(t, ts.URL, "POST", "/pets/"+luna+"/follow", ana, nil); st != http.StatusCreated {
		t.Fatalf("expected 201 follow, got %d body=%s", st, body)
	}
	if st, _ := doReq(t, ts.URL, "POST", "/pets/"+luna+"/follow", ana, nil); st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate follow, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "POST", "/pets/"+milo+"/follow", ana, nil); st != http.StatusBadRequest {
		t.Fatalf("expected 400 following own pet, got %d", st)
	}
	{
		_, body := doReq(t, ts.URL, "GET", "/pets/"+luna+"/follow", ana, nil)
		var status map[string]bool
		mustDecode(t, body, &status)
		if !status["following"] {
			t.Fatalf("expected following=true, got %s", body)
		}
		_, body = doReq(t, ts.URL, "GET", "/pets/"+luna+"/follow", bob, nil)
		status = nil
		mustDecode(t, body, &status)
		if status["following"] {
			t.Fatalf("owner does not follow own pet, got %s", body)
		}
	}

	// 4) Bob publica; el post aparece en el feed de Ana
	postID := createPost(t, ts.URL, bob, luna)
	{
		st, body := doReq(t, ts.URL, "GET", "/feed", ana, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 feed, got %d body=%s", st, body)
		}
		var feed []map[string]any
		mustDecode(t, body, &feed)
		if len(feed) != 1 || fmt.Sprint(feed[0]["id"]) != postID {
			t.Fatalf("expected bob's post in ana's feed, got %s", body)
		}
	}

	// 5) Like único + comentario, contadores visibles en el post
	if st, body := doReq(t, ts.URL, "POST", "/posts/"+postID+"/like", ana, nil); st != http.StatusOK {
		t.Fatalf("expected 200 like, got %d body=%s", st, body)
	}
	if st, _ := doReq(t, ts.URL, "POST", "/posts/"+postID+"/like", ana, nil); st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate like, got %d", st)
	}
	if st, body := doReq(t, ts.URL, "POST", "/posts/"+postID+"/comments", ana, map[string]any{"content": "qué linda"}); st != http.StatusCreated {
		t.Fatalf("expected 201 comment, got %d body=%s", st, body)
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/posts/"+postID, ana, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get post, got %d", st)
		}
		var p map[string]any
		mustDecode(t, body, &p)
		if p["likesCount"] != float64(1) || p["commentsCount"] != float64(1) {
			t.Fatalf("unexpected counters: %s", body)
		}
	}

	// 6) Swipes cruzados => match mutuo
	{
		st, body := doReq(t, ts.URL, "GET", "/matches/potential", ana, nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"name":"Luna"`) {
			t.Fatalf("expected Luna as potential match, got %d body=%s", st, body)
		}
	}
	if res := swipe(t, ts.URL, ana, milo, luna); res["mutual"] != false {
		t.Fatalf("first swipe must not be mutual: %v", res)
	}
	if res := swipe(t, ts.URL, bob, luna, milo); res["mutual"] != true {
		t.Fatalf("second swipe must be mutual: %v", res)
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/matches?mutual=true", ana, nil)
		var ms []map[string]any
		mustDecode(t, body, &ms)
		if st != http.StatusOK || len(ms) != 1 || ms[0]["isMatch"] != true {
			t.Fatalf("expected one mutual match for ana, got %d body=%s", st, body)
		}
	}
	{
		_, body := doReq(t, ts.URL, "GET", "/matches/potential", ana, nil)
		if strings.Contains(string(body), `"name":"Luna"`) {
			t.Fatalf("Luna must leave potential matches after swipe: %s", body)
		}
	}

	// 7) Recomendaciones: se generan (fallback) y se cachean sobre la mascota
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+milo+"/recommendations", bob, nil)
		if st != http.StatusOK || !strings.Contains(string(body), "trainingPlan") {
			t.Fatalf("expected recommendations, got %d body=%s", st, body)
		}
		if st, _ := doReq(t, ts.URL, "GET", "/pets/"+milo+"/recommendations?refresh=true", bob, nil); st != http.StatusForbidden {
			t.Fatalf("expected 403 refresh by non-owner, got %d", st)
		}
	}

	// 8) Historial médico: solo el dueño
	if st, _ := doReq(t, ts.URL, "POST", "/pets/"+milo+"/medical-records", bob, map[string]any{"type": "checkup"}); st != http.StatusForbidden {
		t.Fatalf("expected 403 medical record by non-owner, got %d", st)
	}
	if st, body := doReq(t, ts.URL, "POST", "/pets/"+milo+"/medical-records", ana, map[string]any{"type": "vaccination", "date": "2024-03-01"}); st != http.StatusCreated {
		t.Fatalf("expected 201 medical record, got %d body=%s", st, body)
	}

	// 9) Borrar el post limpia likes y comentarios
	if st, _ := doReq(t, ts.URL, "DELETE", "/posts/"+postID, ana, nil); st != http.StatusForbidden {
		t.Fatalf("expected 403 deleting someone else's post, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "DELETE", "/posts/"+postID, bob, nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 delete post, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/posts/"+postID+"/comments", ana, nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 comments of deleted post, got %d", st)
	}
}

func TestHTTP_PrivatePetHiddenFromOthers(t *testing.T) {
	ts := newServer(t, router.Options{})
	ana := register(t, ts.URL, "ana@example.com", "ana")
	bob := register(t, ts.URL, "bob@example.com", "bob")

	pet := createPet(t, ts.URL, ana, map[string]any{"name": "Shy", "species": "cat", "isPublic": false})

	if st, _ := doReq(t, ts.URL, "GET", "/pets/"+pet, bob, nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 for private pet, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/pets/"+pet, ana, nil); st != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d", st)
	}
	_, body := doReq(t, ts.URL, "GET", "/matches/potential", bob, nil)
	if strings.Contains(string(body), "Shy") {
		t.Fatalf("private pet must not be a potential match: %s", body)
	}

	post := createPost(t, ts.URL, ana, pet)
	bobPet := createPet(t, ts.URL, bob, map[string]any{"name": "Max", "species": "dog"})

	for _, c := range []struct {
		method, path string
		body         any
	}{
		{"POST", "/pets/" + pet + "/follow", nil},
		{"GET", "/pets/" + pet + "/follow", nil},
		{"GET", "/pets/" + pet + "/followers", nil},
		{"GET", "/pets/" + pet + "/posts", nil},
		{"GET", "/posts/" + post, nil},
		{"POST", "/posts/" + post + "/like", nil},
		{"GET", "/posts/" + post + "/comments", nil},
		{"POST", "/matches/swipe", map[string]any{
			"petId": mustInt(t, bobPet), "targetPetId": mustInt(t, pet), "swipeDirection": "right",
		}},
	} {
		if st, body := doReq(t, ts.URL, c.method, c.path, bob, c.body); st != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404 for private pet, got %d body=%s", c.method, c.path, st, body)
		}
	}
	if st, _ := doReq(t, ts.URL, "GET", "/pets/"+pet+"/posts", ana, nil); st != http.StatusOK {
		t.Fatalf("expected 200 posts for owner, got %d", st)
	}

	// Una mascota que pasa a privada deja de aparecer en el feed de quien la seguía.
	luna := createPet(t, ts.URL, ana, map[string]any{"name": "Luna", "species": "dog"})
	if st, body := doReq(t, ts.URL, "POST", "/pets/"+luna+"/follow", bob, nil); st != http.StatusCreated {
		t.Fatalf("expected 201 follow, got %d body=%s", st, body)
	}
	createPost(t, ts.URL, ana, luna)
	if st, body := doReq(t, ts.URL, "PATCH", "/pets/"+luna, ana, map[string]any{"isPublic": false}); st != http.StatusOK {
		t.Fatalf("expected 200 update pet, got %d body=%s", st, body)
	}
	_, body = doReq(t, ts.URL, "GET", "/feed", bob, nil)
	var feed []map[string]any
	mustDecode(t, body, &feed)
	if len(feed) != 0 {
		t.Fatalf("expected empty feed after pet went private, got %s", body)
	}
}

func TestHTTP_RegisterValidation(t *testing.T) {
	ts := newServer(t, router.Options{})

	register(t, ts.URL, "ana@example.com", "ana")
	if st, _ := doReq(t, ts.URL, "POST", "/auth/register", "", map[string]any{
		"email": "ana@example.com", "username": "other", "password": "password123",
	}); st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate email, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "POST", "/auth/register", "", map[string]any{
		"email": "not-an-email", "username": "x1234", "password": "password123",
	}); st != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid email, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "POST", "/auth/login", "", map[string]any{
		"email": "ana@example.com", "password": "wrong-password",
	}); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 bad password, got %d", st)
	}
}

func TestHTTP_JWTAuth(t *testing.T) {
	a, err := jwtauth.New("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("jwtauth: %v", err)
	}
	ts := newServer(t, router.Options{AuthVerifier: a, TokenIssuer: a})

	st, body := doReq(t, ts.URL, "POST", "/auth/register", "", map[string]any{
		"email": "ana@example.com", "username": "ana", "password": "password123",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", st, body)
	}
	var out struct {
		Token string `json:"token"`
	}
	mustDecode(t, body, &out)
	if out.Token == "" {
		t.Fatalf("expected token in register response: %s", body)
	}

	// El header de debug se ignora cuando hay verifier
	if st, _ := doReq(t, ts.URL, "GET", "/me", "1", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with debug header in jwt mode, got %d", st)
	}

	req, _ := http.NewRequest("GET", ts.URL+"/me", nil)
	req.Header.Set("Authorization", "Bearer "+out.Token)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 /me with token, got %d", res.StatusCode)
	}
}

func TestHTTP_UploadLocal(t *testing.T) {
	store, err := localstore.New(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("localstore: %v", err)
	}
	ts := newServer(t, router.Options{Uploader: store, Files: store.Handler("/uploads"), FilesPrefix: "/uploads"})
	ana := register(t, ts.URL, "ana@example.com", "ana")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="milo.png"`)
	h.Set("Content-Type", "image/png")
	part, _ := mw.CreatePart(h)
	_, _ = part.Write([]byte("fake-png"))
	_ = mw.Close()

	req, _ := http.NewRequest("POST", ts.URL+"/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Debug-User-ID", ana)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 upload, got %d body=%s", res.StatusCode, body)
	}
	var out struct {
		URL string `json:"url"`
	}
	mustDecode(t, body, &out)
	if !strings.HasPrefix(out.URL, "/uploads/"+ana+"/") {
		t.Fatalf("unexpected upload url %q", out.URL)
	}

	st, got := doReq(t, ts.URL, "GET", out.URL, "", nil)
	if st != http.StatusOK || string(got) != "fake-png" {
		t.Fatalf("expected stored file, got %d %q", st, got)
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := newServer(t, router.Options{})

	if st, _ := doReq(t, ts.URL, "GET", "/health", "", nil); st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}
	st, body := doReq(t, ts.URL, "GET", "/metrics", "", nil)
	if st != http.StatusOK || !strings.Contains(string(body), `http_requests_total{method="GET",route="/health",status="200"}`) {
		t.Fatalf("expected health request counted, got %d body=%s", st, body)
	}
}

func register(t *testing.T, baseURL, email, username string) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/auth/register", "", map[string]any{
		"email":    email,
		"username": username,
		"password": "password123",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", st, body)
	}
	var out struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	mustDecode(t, body, &out)
	return fmt.Sprint(out.User.ID)
}

func createPet(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/pets", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, body)
	}
	return idOf(t, body)
}

func createPost(t *testing.T, baseURL, userID, petID string) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/posts", userID, map[string]any{
		"petId":    mustInt(t, petID),
		"imageUrl": "https://img.example.com/luna.jpg",
		"caption":  "paseo",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create post, got %d body=%s", st, body)
	}
	return idOf(t, body)
}

func swipe(t *testing.T, baseURL, userID, petID, targetID string) map[string]any {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/matches/swipe", userID, map[string]any{
		"petId":          mustInt(t, petID),
		"targetPetId":    mustInt(t, targetID),
		"swipeDirection": "right",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 swipe, got %d body=%s", st, body)
	}
	var out map[string]any
	mustDecode(t, body, &out)
	return out
}

func idOf(t *testing.T, body []byte) string {
	t.Helper()
	var out struct {
		ID int64 `json:"id"`
	}
	mustDecode(t, body, &out)
	if out.ID == 0 {
		t.Fatalf("missing id in %s", body)
	}
	return fmt.Sprint(out.ID)
}

func mustInt(t *testing.T, s string) int64 {
	t.Helper()
	var n int64
	if _, err := fmt.Sscan(s, &n); err != nil {
		t.Fatalf("bad id %q", s)
	}
	return n
}

func mustDecode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
