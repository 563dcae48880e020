package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"socialfeed/internal/store"
)

const maxBodyBytes = 1 << 20

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,max=150,excludesall= /"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	Bio       string `json:"bio" validate:"max=500"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url,max=1024"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ProfileUpdateRequest struct {
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	Bio       *string `json:"bio" validate:"omitempty,max=500"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url,max=1024"`
}

type PostRequest struct {
	Title    string `json:"title" validate:"max=255"`
	Content  string `json:"content" validate:"required"`
	MediaURL string `json:"media_url" validate:"omitempty,url,max=1024"`
}

type PostPatchRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=255"`
	Content  *string `json:"content" validate:"omitempty,min=1"`
	MediaURL *string `json:"media_url" validate:"omitempty,url,max=1024"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// decode reads a JSON body into dst and validates it, returning a message
// suitable for a 400 response on failure.
func decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("Invalid request body: %v", err)
	}
	if err := getValidator().Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "You have to enter a valid email address"
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "excludesall":
		return fmt.Sprintf("%s contains invalid characters", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func pathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return uint(id), nil
}

// page reads ?page= and ?page_size=, clamped to the configured bounds.
func (api *API) page(r *http.Request) store.Page {
	q := r.URL.Query()
	p := store.Page{Number: 1, Size: api.pages.DefaultPageSize}
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		p.Number = n
	}
	if n, err := strconv.Atoi(q.Get("page_size")); err == nil && n > 0 {
		p.Size = n
	}
	if p.Size > api.pages.MaxPageSize {
		p.Size = api.pages.MaxPageSize
	}
	return p
}

// rowLimit reads ?no=, defaulting to 100.
func rowLimit(r *http.Request) int {
	limit := 100
	if n, err := strconv.Atoi(r.URL.Query().Get("no")); err == nil && n > 0 {
		limit = n
	}
	return limit
}
