package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newUploadRequest(t *testing.T, filename string, body string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	assert.NoError(t, err)
	_, err = fw.Write([]byte(body))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/products/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req, httptest.NewRecorder()
}

// 拡張子がcsv/xls/xlsx以外は400。usecaseまで到達しない。
func TestUploadInventory_RejectsUnknownExtension(t *testing.T) {
	e := echo.New()
	h := NewAdminProductHandler(usecase.NewProductUsecase(nil, nil, nil, nil, nil))

	req, rec := newUploadRequest(t, "inventory.pdf", "not a csv")
	c := e.NewContext(req, rec)

	assert.NoError(t, h.uploadInventory(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid file type. Only CSV, XLS, and XLSX files are allowed"}`, rec.Body.String())
}

// xls/xlsxは受け付けるがパーサ未対応なので500
func TestUploadInventory_XlsxNotParsable(t *testing.T) {
	e := echo.New()
	h := NewAdminProductHandler(usecase.NewProductUsecase(nil, nil, nil, nil, nil))

	req, rec := newUploadRequest(t, "inventory.xlsx", "binary")
	c := e.NewContext(req, rec)

	assert.NoError(t, h.uploadInventory(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUploadInventory_FileRequired(t *testing.T) {
	e := echo.New()
	h := NewAdminProductHandler(usecase.NewProductUsecase(nil, nil, nil, nil, nil))

	req := httptest.NewRequest(http.MethodPost, "/admin/products/upload", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.uploadInventory(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"File is required"}`, rec.Body.String())
}
