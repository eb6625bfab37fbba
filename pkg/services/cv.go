package services

import (
	"context"
	"io"
	"net/http"

	"github.com/nikogura/portfolio-admin/pkg/api"
	"github.com/nikogura/portfolio-admin/pkg/client"
)

// CVFile is an uploaded CV document.
type CVFile struct {
	Name    string
	Content io.Reader
}

// CVService binds /cv.
type CVService struct{ base }

// Process uploads a CV for extraction. mode is api.ModePreview or api.ModeReplace.
func (s *CVService) Process(ctx context.Context, file CVFile, mode string) (resp api.CVProcessResponse, err error) {
	form := &client.Multipart{
		Fields: []client.FormField{{Name: "mode", Value: mode}},
		Files: []client.FormFile{{
			Field:       "file",
			Filename:    file.Name,
			ContentType: "application/pdf",
			Content:     file.Content,
		}},
	}
	err = s.requester.Do(ctx, client.Request{Method: http.MethodPost, Path: "/cv/process", Body: form}, &resp)
	return resp, err
}

// AuthService binds /auth.
type AuthService struct{ base }

// GoogleLogin exchanges a Google access token for a backend bearer token.
func (s *AuthService) GoogleLogin(ctx context.Context, token string) (resp api.AuthResponse, err error) {
	err = s.requester.Do(ctx, client.Request{Method: http.MethodPost, Path: "/auth/google-login", Body: api.GoogleLoginRequest{Token: token}}, &resp)
	return resp, err
}
