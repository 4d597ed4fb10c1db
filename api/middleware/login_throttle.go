package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dev-arham/ecommerce-server/api/responses"
	"github.com/dev-arham/ecommerce-server/pkg/config"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
	"github.com/dev-arham/ecommerce-server/pkg/logger"
)

type throttleStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

const (
	throttleIPKeyPrefix    = "throttle:login:ip:"
	throttleEmailKeyPrefix = "throttle:login:email:"
)

type loginThrottle struct {
	cfg   config.LoginRateLimitConfig
	store throttleStore
	logg  *logger.Logger
}

// LoginThrottle caps login attempts per client IP and per submitted email
// inside a sliding window backed by the shared counter store. A zero window,
// zero limits, or a missing store disables throttling.
func LoginThrottle(cfg config.LoginRateLimitConfig, store throttleStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if cfg.Window <= 0 || (cfg.IPLimit <= 0 && cfg.EmailLimit <= 0) || store == nil {
			return next
		}
		lt := &loginThrottle{cfg: cfg, store: store, logg: logg}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if cfg.IPLimit > 0 {
				ip := clientIP(r)
				blocked, err := lt.tick(ctx, throttleIPKeyPrefix+ip, cfg.IPLimit, "ip", ip)
				if err != nil {
					responses.WriteError(ctx, logg, w, err)
					return
				}
				if blocked {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
					return
				}
			}

			if cfg.EmailLimit > 0 {
				email, err := peekEmail(r)
				if err != nil {
					responses.WriteError(ctx, logg, w, err)
					return
				}
				if email != "" {
					digest := sha256.Sum256([]byte(email))
					key := throttleEmailKeyPrefix + hex.EncodeToString(digest[:])
					blocked, err := lt.tick(ctx, key, cfg.EmailLimit, "email", key)
					if err != nil {
						responses.WriteError(ctx, logg, w, err)
						return
					}
					if blocked {
						responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// tick bumps the counter for key and reports whether the limit is exceeded.
func (lt *loginThrottle) tick(ctx context.Context, key string, limit int, scope, subject string) (bool, error) {
	attempts, err := lt.store.IncrWithTTL(ctx, key, lt.cfg.Window)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "login throttle counter")
	}
	if attempts <= int64(limit) {
		return false, nil
	}
	if lt.logg != nil {
		logCtx := lt.logg.WithFields(ctx, map[string]any{
			"scope":    scope,
			"subject":  subject,
			"attempts": attempts,
			"limit":    limit,
			"window":   lt.cfg.Window.String(),
		})
		lt.logg.Warn(logCtx, "login.throttled")
	}
	return true, nil
}

// peekEmail reads the login body to extract the email for per-account
// throttling, then restores the body for the handler.
func peekEmail(r *http.Request) (string, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read login body")
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))

	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", nil
	}
	return strings.ToLower(strings.TrimSpace(body.Email)), nil
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
