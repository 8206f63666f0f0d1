package helper

import (
	"errors"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"inkwell-cms/models"
)

const (
	textError             = `error`
	textOk                = `ok`
	codeSuccess           = 200
	codeCreated           = 201
	codeBadRequestError   = 400
	codeUnauthorizedError = 401
)

// ResponseHelper ...
type ResponseHelper struct {
	C          *gin.Context
	Status     string
	Message    string
	Data       interface{}
	Code       int // not the http code
	CodeType   string
	HTTPStatus int
}

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

var (
	translatorOnce sync.Once
	translator     ut.Translator
)

// NewHTTPHelper hooks English error translations and json field names into
// gin's validator.
func NewHTTPHelper() *HTTPHelper {
	v, _ := binding.Validator.Engine().(*validator.Validate)
	translatorOnce.Do(func() {
		locale := en.New()
		translator, _ = ut.New(locale, locale).GetTranslator("en")
		if v == nil {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = en_translations.RegisterDefaultTranslations(v, translator)
	})
	return &HTTPHelper{Validate: v, Translator: translator}
}

// SetResponse ...
// Set response data.
func (u *HTTPHelper) SetResponse(c *gin.Context, status string, message string, data interface{}, code int, codeType string) ResponseHelper {
	return ResponseHelper{C: c, Status: status, Message: message, Data: data, Code: code, CodeType: codeType, HTTPStatus: code}
}

// SendError ...
// Send error response to consumers.
func (u *HTTPHelper) SendError(c *gin.Context, message string, data interface{}, code int, codeType string) error {
	res := u.SetResponse(c, textError, message, data, code, codeType)

	return u.SendResponse(res)
}

// SendDomainError ...
// Send a models.Error with the status its code maps to. Anything else is
// reported as an internal error without leaking its text.
func (u *HTTPHelper) SendDomainError(c *gin.Context, err error) error {
	var domainErr *models.Error
	if !errors.As(err, &domainErr) {
		_ = c.Error(err)
		return u.SendError(c, "internal server error", u.EmptyJsonMap(), http.StatusInternalServerError, `internalError`)
	}

	message := domainErr.Message
	switch domainErr.Code {
	case models.CodeIO:
		_ = c.Error(err)
		message = "upload failed"
	case models.CodeInternal:
		_ = c.Error(err)
		message = "internal server error"
	case models.CodeConversion:
		message = domainErr.Error()
	}

	res := u.SetResponse(c, textError, message, u.EmptyJsonMap(), domainErr.HTTPStatus(), codeType(domainErr.Code))
	return u.SendResponse(res)
}

// SendBindError ...
// Send the result of a failed ShouldBind call.
func (u *HTTPHelper) SendBindError(c *gin.Context, err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return u.SendValidationError(c, validationErrors)
	}
	return u.SendBadRequest(c, "invalid request body", u.EmptyJsonMap())
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, codeBadRequestError, `badRequest`)
}

// SendValidationError ...
// Send validation error response to consumers.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) error {
	errorResponse := map[string][]string{}
	for _, err := range validationErrors {
		msg := err.Error()
		if u.Translator != nil {
			msg = err.Translate(u.Translator)
		}
		errorResponse[err.Field()] = append(errorResponse[err.Field()], msg)
	}

	c.JSON(http.StatusBadRequest, map[string]interface{}{
		"code":         codeBadRequestError,
		"code_type":    "validationError",
		"code_message": errorResponse,
		"data":         u.EmptyJsonMap(),
	})
	return nil
}

// SendUnauthorizedError ...
// Send unauthorized response to consumers.
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, codeUnauthorizedError, `unAuthorized`)
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) error {
	res := u.SetResponse(c, textOk, message, data, codeSuccess, `success`)

	return u.SendResponse(res)
}

// SendCreated ...
func (u *HTTPHelper) SendCreated(c *gin.Context, message string, data interface{}) error {
	res := u.SetResponse(c, textOk, message, data, codeCreated, `created`)

	return u.SendResponse(res)
}

// SendResponse ...
// Send response
func (u *HTTPHelper) SendResponse(res ResponseHelper) error {
	if len(res.Message) == 0 {
		res.Message = `success`
	}
	if res.HTTPStatus == 0 {
		res.HTTPStatus = http.StatusOK
	}

	res.C.JSON(res.HTTPStatus, map[string]interface{}{
		"code":         res.Code,
		"code_type":    res.CodeType,
		"code_message": res.Message,
		"data":         res.Data,
	})
	return nil
}

func (u *HTTPHelper) EmptyJsonMap() map[string]interface{} {
	return make(map[string]interface{})
}

// get pagination URL
func (u *HTTPHelper) GetPagingUrl(c *gin.Context, page, limit int) string {
	r := c.Request
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.Path + "?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)
}

// Set paginantion response
func (u *HTTPHelper) GeneratePaging(c *gin.Context, limit, page, totalRecord int) map[string]interface{} {
	prevURL, nextURL, firstURL, lastURL := "", "", "", ""

	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(totalRecord) / float64(limit)))
	}

	if page > 1 && page <= totalPages {
		prevURL = u.GetPagingUrl(c, page-1, limit)
		firstURL = u.GetPagingUrl(c, 1, limit)
	}
	if page < totalPages {
		nextURL = u.GetPagingUrl(c, page+1, limit)
		lastURL = u.GetPagingUrl(c, totalPages, limit)
	}

	return map[string]interface{}{
		"total_records": totalRecord,
		"per_page":      limit,
		"current_page":  page,
		"total_pages":   totalPages,
		"links": map[string]interface{}{
			"previous": prevURL,
			"next":     nextURL,
			"first":    firstURL,
			"last":     lastURL,
		},
	}
}

func codeType(code models.ErrorCode) string {
	switch code {
	case models.CodeValidation:
		return "validationError"
	case models.CodeConversion:
		return "conversionError"
	case models.CodeForbidden:
		return "forbidden"
	case models.CodeUnauthorized:
		return "unAuthorized"
	case models.CodeConflict:
		return "conflict"
	case models.CodeNotFound:
		return "notFound"
	case models.CodeIO:
		return "ioError"
	default:
		return "internalError"
	}
}
