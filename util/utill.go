package util

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/Maxbrain0/blogger/model"
	"github.com/labstack/echo/v4"
)

// MethodOverrideField is the form field that can carry PUT or DELETE on a POST
const MethodOverrideField = "_method"

// BindPost reads a post out of the request body. JSON bodies are decoded as
// they are; url-encoded and multipart forms take the first value of each
// field. A body without a content type is ignored and yields an empty post.
// The method override field never ends up in the post.
func BindPost(c echo.Context) (model.Post, error) {
	post := model.Post{}
	contentType := c.Request().Header.Get(echo.HeaderContentType)

	if contentType == "" {
		return post, nil
	}
	if IsForm(contentType) {
		params, err := c.FormParams()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
		}
		for k, v := range params {
			if len(v) > 0 {
				post[k] = v[0]
			}
		}
	} else if err := (&echo.DefaultBinder{}).BindBody(c, &post); err != nil {
		return nil, err
	}

	delete(post, MethodOverrideField)
	return post, nil
}

// IsForm reports whether a content type is one of the form encodings
func IsForm(contentType string) bool {
	return strings.HasPrefix(contentType, echo.MIMEApplicationForm) ||
		strings.HasPrefix(contentType, echo.MIMEMultipartForm)
}

// MethodOverride picks the override method from the X-HTTP-Method-Override
// header first and the _method body field second, for form and JSON bodies.
func MethodOverride(c echo.Context) string {
	if m := c.Request().Header.Get(echo.HeaderXHTTPMethodOverride); m != "" {
		return strings.ToUpper(m)
	}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	switch {
	case IsForm(contentType):
		return strings.ToUpper(c.FormValue(MethodOverrideField))
	case strings.HasPrefix(contentType, echo.MIMEApplicationJSON):
		return strings.ToUpper(jsonMethodOverride(c.Request()))
	}
	return ""
}

// jsonMethodOverride reads _method out of a JSON body and puts the body
// back so the handler can still bind it.
func jsonMethodOverride(req *http.Request) string {
	if req.Body == nil || req.Body == http.NoBody {
		return ""
	}
	body, err := io.ReadAll(req.Body)
	req.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	m, _ := fields[MethodOverrideField].(string)
	return m
}
