package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/auth"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/dmitrijs2005/jobportal/internal/server/services"
	"github.com/dmitrijs2005/jobportal/internal/server/uploads"
	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	FullName    string `json:"fullname" form:"fullname"`
	Email       string `json:"email" form:"email"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber"`
	Password    string `json:"password" form:"password"`
	Role        string `json:"role" form:"role"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

type updateProfileRequest struct {
	FullName    *string `json:"fullname"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
	Bio         *string `json:"bio"`
	Skills      *string `json:"skills"`
}

func (s *HTTPServer) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response{Message: "Invalid request body"})
	}

	user, err := s.users.Register(c.Request().Context(), services.RegisterInput{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		Role:        models.Role(req.Role),
	})
	if err != nil {
		return s.fail(c, opRegister, err)
	}

	return c.JSON(http.StatusOK, response{
		Message: fmt.Sprintf("Account created successfully for %s", user.FullName),
		Success: true,
	})
}

func (s *HTTPServer) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response{Message: "Invalid request body"})
	}

	res, err := s.users.Login(c.Request().Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		return s.fail(c, opLogin, err)
	}

	c.SetCookie(httpCookie(res.Cookie))
	return c.JSON(http.StatusOK, response{
		Message: fmt.Sprintf("Welcome back %s", res.User.FullName),
		User:    res.User,
		Success: true,
	})
}

func (s *HTTPServer) logout(c echo.Context) error {
	c.SetCookie(httpCookie(s.users.Logout(c.Request().Context())))
	return c.JSON(http.StatusOK, response{Message: "Logged out successfully", Success: true})
}

func (s *HTTPServer) updateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	in, err := bindUpdate(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response{Message: "Invalid request body"})
	}

	obj, err := s.storeAttachment(c)
	if err != nil {
		return s.fail(c, opUpdate, err)
	}
	in.Upload = obj

	user, err := s.users.UpdateProfile(ctx, userIDFrom(c), in)
	if err != nil {
		return s.fail(c, opUpdate, err)
	}

	return c.JSON(http.StatusOK, response{Message: "Profile updated successfully", User: user, Success: true})
}

// bindUpdate keeps track of which fields were sent. JSON bodies use nil
// pointers for absent keys; form bodies are checked key by key.
func bindUpdate(c echo.Context) (services.UpdateProfileInput, error) {
	ctype := c.Request().Header.Get(echo.HeaderContentType)

	if strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		var req updateProfileRequest
		if err := c.Bind(&req); err != nil {
			return services.UpdateProfileInput{}, err
		}
		return services.UpdateProfileInput{
			FullName:    req.FullName,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			Bio:         req.Bio,
			Skills:      req.Skills,
		}, nil
	}

	form, err := c.FormParams()
	if err != nil {
		return services.UpdateProfileInput{}, err
	}
	field := func(key string) *string {
		if vs, ok := form[key]; ok && len(vs) > 0 {
			v := vs[0]
			return &v
		}
		return nil
	}
	return services.UpdateProfileInput{
		FullName:    field("fullname"),
		Email:       field("email"),
		PhoneNumber: field("phoneNumber"),
		Bio:         field("bio"),
		Skills:      field("skills"),
	}, nil
}

// storeAttachment uploads the optional "file" part. Without upload storage the
// file is dropped with a warning.
func (s *HTTPServer) storeAttachment(c echo.Context) (*uploads.Object, error) {
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return nil, nil
	}

	fh, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	obj, err := s.uploader.Upload(c.Request().Context(), uploads.File{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	})
	if errors.Is(err, common.ErrUploadNotAvailable) {
		s.logger.Warn(c.Request().Context(), "attachment dropped, upload storage is not configured", "file", fh.Filename)
		return nil, nil
	}
	return obj, err
}

func httpCookie(d auth.CookieDirective) *http.Cookie {
	c := &http.Cookie{
		Name:     d.Name,
		Value:    d.Value,
		Path:     "/",
		HttpOnly: d.HTTPOnly,
		Secure:   d.Secure,
		SameSite: sameSite(d.SameSite),
	}
	if d.MaxAge > 0 {
		c.MaxAge = int(d.MaxAge / time.Second)
		c.Expires = time.Now().Add(d.MaxAge)
	} else {
		// serialized as Max-Age=0
		c.MaxAge = -1
	}
	return c
}

func sameSite(s auth.SameSite) http.SameSite {
	switch s {
	case auth.SameSiteLax:
		return http.SameSiteLaxMode
	case auth.SameSiteStrict:
		return http.SameSiteStrictMode
	case auth.SameSiteNone:
		return http.SameSiteNoneMode
	default:
		return http.SameSiteDefaultMode
	}
}
