package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	hzte "github.com/cloudwego/hertz/pkg/common/errors"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dao "nurse-directory/pkg/core/nurse/repository/dao/impl"
	"nurse-directory/pkg/core/nurse/service"
)

// newNurseServer 直接挂载 handler，并在链尾收集 c.Error 记录的错误
func newNurseServer(recorded *[]*hzte.Error) *server.Hertz {
	h := server.New()
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		ctx.Next(c)
		*recorded = append(*recorded, ctx.Errors...)
	})
	nh := NewNurseHandler(service.NewNurseService(dao.NewMemoryNurseRepository()))
	h.POST("/nurse/create", nh.Create)
	h.PUT("/nurse/update/:id", nh.Update)
	h.POST("/nurse/login", nh.Login)
	h.GET("/nurse/:id", nh.FindByID)
	return h
}

func send(h *server.Hertz, method, url, body string) (int, map[string]interface{}) {
	w := ut.PerformRequest(h.Engine, method, url,
		&ut.Body{Body: bytes.NewBufferString(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: "application/json"})
	resp := w.Result()
	var out map[string]interface{}
	_ = json.Unmarshal(resp.Body(), &out)
	return resp.StatusCode(), out
}

func TestUpdateBindsExplicitNull(t *testing.T) {
	var recorded []*hzte.Error
	h := newNurseServer(&recorded)

	code, created := send(h, "POST", "/nurse/create", `{"user":"jdoe","pw":"pw","location":"North Wing","title":"RN"}`)
	require.Equal(t, 201, code)

	code, updated := send(h, "PUT", "/nurse/update/1", `{"location":null,"specialty":"ICU"}`)
	require.Equal(t, 200, code)
	assert.Nil(t, updated["location"])
	assert.Equal(t, "ICU", updated["specialty"])
	assert.Equal(t, created["title"], updated["title"])
}

func TestUpdateRejectsWrongFieldType(t *testing.T) {
	var recorded []*hzte.Error
	h := newNurseServer(&recorded)
	code, _ := send(h, "POST", "/nurse/create", `{"user":"jdoe","pw":"pw"}`)
	require.Equal(t, 201, code)

	code, body := send(h, "PUT", "/nurse/update/1", `{"title":42}`)
	assert.Equal(t, 400, code)
	assert.Equal(t, msgInvalidJSON, body["error"])

	code, body = send(h, "PUT", "/nurse/update/9", `{"title":42}`)
	assert.Equal(t, 404, code)
	assert.Equal(t, msgNotFound, body["error"])
}

func TestCreateAndLoginRejectEmptyBody(t *testing.T) {
	var recorded []*hzte.Error
	h := newNurseServer(&recorded)

	code, body := send(h, "POST", "/nurse/create", "")
	assert.Equal(t, 400, code)
	assert.Equal(t, msgInvalidJSON, body["error"])

	code, body = send(h, "POST", "/nurse/login", "")
	assert.Equal(t, 400, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, msgInvalidJSON, body["message"])
}

func TestRejectionsAreRecordedAsPublicErrors(t *testing.T) {
	var recorded []*hzte.Error
	h := newNurseServer(&recorded)

	code, _ := send(h, "POST", "/nurse/create", `{"user":"jdoe","pw":"pw"}`)
	require.Equal(t, 201, code)
	assert.Empty(t, recorded)

	code, _ = send(h, "POST", "/nurse/create", `{"user":"jdoe","pw":"pw"}`)
	assert.Equal(t, 409, code)
	code, _ = send(h, "POST", "/nurse/login", `{"user":"jdoe","pw":"wrong"}`)
	assert.Equal(t, 401, code)

	require.Len(t, recorded, 2)
	for _, e := range recorded {
		assert.Equal(t, hzte.ErrorTypePublic, e.Type)
	}
}
