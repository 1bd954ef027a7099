package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
)

const DefaultOAuthTokenURL = "https://auth.monday.com/oauth2/token"

// KeyVerifier checks a Sensibot assistant key.
type KeyVerifier interface {
	VerifyKey(ctx context.Context, token string) (json.RawMessage, error)
}

type AuthHandler struct {
	Verifier      KeyVerifier
	ClientID      string
	ClientSecret  string
	RedirectURI   string
	OAuthTokenURL string
	httpClient    *http.Client
}

func NewAuthHandler(verifier KeyVerifier, clientID, clientSecret, redirectURI string) *AuthHandler {
	return &AuthHandler{
		Verifier:      verifier,
		ClientID:      clientID,
		ClientSecret:  clientSecret,
		RedirectURI:   redirectURI,
		OAuthTokenURL: DefaultOAuthTokenURL,
		httpClient:    http.DefaultClient,
	}
}

func (h *AuthHandler) HandleVerifyToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Token is required"})
		return
	}

	payload, err := h.Verifier.VerifyKey(r.Context(), req.Token)
	if err != nil {
		log.Printf("❌ Token verification failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Token verification failed"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

func (h *AuthHandler) HandleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "code is required"})
		return
	}

	params := url.Values{}
	params.Set("client_id", h.ClientID)
	params.Set("client_secret", h.ClientSecret)
	params.Set("code", code)
	params.Set("redirect_uri", h.RedirectURI)

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.OAuthTokenURL, strings.NewReader(params.Encode()))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "OAuth failed"})
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ OAuth error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "OAuth failed"})
		return
	}
	defer resp.Body.Close()

	var tokenRes struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenRes); err != nil || tokenRes.AccessToken == "" {
		log.Printf("❌ OAuth error: no access token in response (status %d)", resp.StatusCode)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "OAuth failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"access_token": tokenRes.AccessToken,
	})
}
