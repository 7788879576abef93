package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// TurnstileVerifyURL is Cloudflare's token verification endpoint
const TurnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// BotVerifier checks a bot-protection token from a public form
type BotVerifier interface {
	Verify(token, remoteIP string) error
}

// TurnstileVerifier verifies Cloudflare Turnstile tokens
type TurnstileVerifier struct {
	Secret  string
	URL     string
	Timeout time.Duration
}

// NewTurnstileVerifier returns a verifier for the given secret key
func NewTurnstileVerifier(secret string) *TurnstileVerifier {
	return &TurnstileVerifier{Secret: secret, URL: TurnstileVerifyURL, Timeout: 5 * time.Second}
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify posts the token to the siteverify endpoint
func (v *TurnstileVerifier) Verify(token, remoteIP string) error {
	if token == "" {
		return fmt.Errorf("%w: bot protection token missing", ErrValidation)
	}

	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	args.Set("secret", v.Secret)
	args.Set("response", token)
	if remoteIP != "" {
		args.Set("remoteip", remoteIP)
	}

	agent := fiber.Post(v.URL).Form(args).Timeout(v.Timeout)
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("turnstile request failed: %w", errs[0])
	}
	if code != fiber.StatusOK {
		return fmt.Errorf("turnstile returned status %d", code)
	}

	var res siteverifyResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return fmt.Errorf("turnstile response unreadable: %w", err)
	}
	if !res.Success {
		return fmt.Errorf("%w: bot protection failed %v", ErrValidation, res.ErrorCodes)
	}
	return nil
}
