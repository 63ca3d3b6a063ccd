package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// captchaResponse is the verification provider's reply shape
// (Turnstile/hCaptcha style siteverify endpoint).
type captchaResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

const defaultCaptchaEndpoint = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// VerifyCaptchaToken checks the human-verification token attached to a
// submission. Submissions without a valid token are rejected before any row
// is written. Set CAPTCHA_DISABLED=true to skip in local development.
func VerifyCaptchaToken(token, remoteIP string) error {
	if strings.ToLower(os.Getenv("CAPTCHA_DISABLED")) == "true" {
		return nil
	}
	if strings.TrimSpace(token) == "" {
		return ErrCaptchaFailed
	}

	endpoint := os.Getenv("CAPTCHA_VERIFY_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultCaptchaEndpoint
	}
	secret := os.Getenv("CAPTCHA_SECRET")

	form := url.Values{}
	form.Set("secret", secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.PostForm(endpoint, form)
	if err != nil {
		return fmt.Errorf("captcha request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("captcha HTTP error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var cr captchaResponse
	if err := json.Unmarshal(bodyBytes, &cr); err != nil {
		return fmt.Errorf("captcha JSON parse error: %w", err)
	}
	if !cr.Success {
		log.Printf("captcha verification failed: %v", cr.ErrorCodes)
		return ErrCaptchaFailed
	}
	return nil
}
