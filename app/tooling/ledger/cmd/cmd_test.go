package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func Test_Demo(t *testing.T) {
	l, err := runDemo(1, nil)
	if err != nil {
		t.Fatalf("Should be able to run the demo: %v", err)
	}

	if l.Length() != 3 {
		t.Fatalf("Should have three blocks, got %d.", l.Length())
	}

	if l.IsValid() {
		t.Fatalf("Should end with an invalid chain.")
	}
}

func Test_Send(t *testing.T) {
	h := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/v1/difficulty":
			var req struct {
				Difficulty uint `json:"difficulty"`
			}
			json.NewDecoder(r.Body).Decode(&req)
			json.NewEncoder(w).Encode(difficulty{Difficulty: req.Difficulty, MaxDifficulty: 5, Algorithm: "sha256"})

		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"data validation error","fields":{"sender":"sender is a required field"}}`))
		}
	}

	srv := httptest.NewServer(http.HandlerFunc(h))
	defer srv.Close()

	var d difficulty
	req := struct {
		Difficulty uint `json:"difficulty"`
	}{
		Difficulty: 3,
	}
	if err := send(http.MethodPut, srv.URL+"/v1/difficulty", req, &d); err != nil {
		t.Fatalf("Should be able to send the request: %v", err)
	}

	if d.Difficulty != 3 || d.Algorithm != "sha256" {
		t.Fatalf("Should decode the response, got %+v.", d)
	}

	err := send(http.MethodPost, srv.URL+"/v1/blocks", struct{}{}, nil)
	if err == nil || !strings.Contains(err.Error(), "sender is a required field") {
		t.Fatalf("Should report the field errors, got %v.", err)
	}
}

func Test_Short(t *testing.T) {
	if got := short("0"); got != "0" {
		t.Fatalf("Should keep a short hash, got %s.", got)
	}

	if got := short(strings.Repeat("a", 64)); got != "aaaaaaaaaaaa..." {
		t.Fatalf("Should trim a long hash, got %s.", got)
	}
}
