package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"antrian/internal/logger"
	"antrian/internal/model"
	"antrian/internal/repository"
	"antrian/internal/testutil"
)

func TestServiceHandler_CRUD(t *testing.T) {
	h := NewServiceHandler(repository.NewServiceRepository(testutil.OpenInMemoryDB(t)), logger.Discard())
	e := newEcho()
	e.GET("/api/layanan", h.List)
	e.POST("/api/layanan", h.Create)
	e.PUT("/api/layanan", h.Update)
	e.DELETE("/api/layanan", h.Delete)

	rec := doJSON(e, http.MethodPost, "/api/layanan", CreateServiceRequest{Name: "Poli Umum"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created CreatedResponse
	decode(t, rec, &created)

	rec = doJSON(e, http.MethodPost, "/api/layanan", CreateServiceRequest{Name: "Poli Umum"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", errorBody(t, rec).Code)

	rec = doJSON(e, http.MethodPost, "/api/layanan", CreateServiceRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPut, "/api/layanan", UpdateServiceRequest{ID: created.ID, Name: "Poli Gigi"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/layanan", nil)
	var list []model.Service
	decode(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Poli Gigi", list[0].Name)

	rec = doJSON(e, http.MethodDelete, "/api/layanan", IDRequest{ID: created.ID})
	assert.Equal(t, http.StatusOK, rec.Code)
}
