package handler

import (
	"net/http"
	"testing"

	"mro-inventory/internal/logger"
	"mro-inventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWriteServiceError_StorageCauseIsLogged(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)

	m := documentMocks{docs: new(MockDocumentService), posting: new(MockPostingService), reversal: new(MockReversalService)}
	docID := uuid.New()
	m.posting.On("Post", mock.Anything, docID, mock.Anything).
		Return(nil, &service.StorageError{Op: "post inventory document", Err: assert.AnError})

	r := gin.New()
	r.Use(logger.RequestID(), logger.GinMiddleware(zap.New(core)))
	NewDocumentHandler(m.docs, m.posting, m.reversal).RegisterRoutes(&r.RouterGroup, newTestAuthorizer())

	w, env := doRequest(t, r, http.MethodPost, "/api/inventory/documents/"+docID.String()+"/post", tokenFor(t, "u1", "storekeeper"), nil)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Storage unavailable, please retry", env.Error)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())

	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, []interface{}{"post inventory document: " + assert.AnError.Error()}, fields["errors"])
	assert.Equal(t, w.Header().Get("X-Request-ID"), fields["request_id"])
	m.posting.AssertExpectations(t)
}
