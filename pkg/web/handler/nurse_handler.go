// ----------- pkg/web/handler/nurse_handler.go -----------
package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	apperrors "nurse-directory/pkg/common/errors"
	core "nurse-directory/pkg/core/nurse/model"
	"nurse-directory/pkg/core/nurse/service"
	"nurse-directory/pkg/web/model"
)

// 对外返回的固定文案，不回显内部错误
const (
	msgMissingFields   = "Missing required fields: user and pw."
	msgDuplicateUser   = "A nurse with this username already exists."
	msgNotFound        = "Nurse not found"
	msgInvalidJSON     = "Invalid JSON content."
	msgSaveFailed      = "Failed to save nurse."
	msgUpdateFailed    = "Failed to update nurse."
	msgDeleteFailed    = "Failed to delete nurse."
	msgFetchFailed     = "Error fetching nurses from database"
	msgLookupFailed    = "Failed to fetch nurse."
	msgMissingCreds    = "Missing credentials."
	msgInvalidCreds    = "Invalid credentials."
	msgLoginSuccessful = "Login successful."
	msgLoginFailed     = "Login failed."
	msgInvalidQuery    = "Invalid query parameters."
)

type NurseHandler struct {
	Nurses service.NurseService
}

func NewNurseHandler(nurses service.NurseService) *NurseHandler {
	return &NurseHandler{Nurses: nurses}
}

// Create handles POST /nurse/create
func (h *NurseHandler) Create(ctx context.Context, c *app.RequestContext) {
	var req model.CreateNurseReq
	if err := bindBody(c, &req); err != nil {
		respondError(c, consts.StatusBadRequest, msgInvalidJSON)
		return
	}

	nurse, err := h.Nurses.Create(ctx, req.Input())
	switch {
	case errors.Is(err, apperrors.ErrInvalidRequest):
		c.Error(apperrors.NewPublic(err, utils.H{"op": "create"}))
		respondError(c, consts.StatusBadRequest, msgMissingFields)
	case errors.Is(err, apperrors.ErrDuplicateUser):
		c.Error(apperrors.NewPublic(err, utils.H{"op": "create", "user": deref(req.User)}))
		respondError(c, consts.StatusConflict, msgDuplicateUser)
	case err != nil:
		h.internalError(ctx, c, "create", err, msgSaveFailed, utils.H{"user": deref(req.User)})
	default:
		hlog.CtxInfof(ctx, "nurse created id=%d user=%s", nurse.ID, nurse.User)
		c.JSON(consts.StatusCreated, model.NewNurseRes(nurse))
	}
}

// Index handles GET /nurse/index with optional name/specialty/location/availability
func (h *NurseHandler) Index(ctx context.Context, c *app.RequestContext) {
	var req model.ListNurseReq
	if err := c.BindQuery(&req); err != nil {
		respondError(c, consts.StatusBadRequest, msgInvalidQuery)
		return
	}

	nurses, err := h.Nurses.List(ctx, req.Filter())
	if err != nil {
		h.internalError(ctx, c, "list", err, msgFetchFailed, utils.H{"filter": req})
		return
	}
	c.JSON(consts.StatusOK, model.NewNurseResList(nurses))
}

// FindByName handles GET /nurse/name/:name, an exact match on user
func (h *NurseHandler) FindByName(ctx context.Context, c *app.RequestContext) {
	user := c.Param("name")
	nurse, err := h.Nurses.FindByUser(ctx, user)
	h.respondNurse(ctx, c, "find-by-name", nurse, err, utils.H{"user": user})
}

// FindByID handles GET /nurse/:id
func (h *NurseHandler) FindByID(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c)
	if !ok {
		respondError(c, consts.StatusNotFound, msgNotFound)
		return
	}
	nurse, err := h.Nurses.FindByID(ctx, id)
	h.respondNurse(ctx, c, "find-by-id", nurse, err, utils.H{"id": id})
}

// Update handles PUT/PATCH /nurse/update/:id. id and user are never changed.
func (h *NurseHandler) Update(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c)
	if !ok {
		respondError(c, consts.StatusNotFound, msgNotFound)
		return
	}

	var patch core.NursePatch
	if err := bindBody(c, &patch); err != nil {
		// 记录不存在时优先返回404
		if _, findErr := h.Nurses.FindByID(ctx, id); apperrors.IsNotFound(findErr) {
			respondError(c, consts.StatusNotFound, msgNotFound)
			return
		}
		respondError(c, consts.StatusBadRequest, msgInvalidJSON)
		return
	}

	nurse, err := h.Nurses.Update(ctx, id, patch)
	switch {
	case apperrors.IsNotFound(err):
		respondError(c, consts.StatusNotFound, msgNotFound)
	case err != nil:
		h.internalError(ctx, c, "update", err, msgUpdateFailed, utils.H{"id": id})
	default:
		c.JSON(consts.StatusOK, model.NewNurseRes(nurse))
	}
}

// Delete handles DELETE /nurse/delete/:id
func (h *NurseHandler) Delete(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c)
	if !ok {
		respondError(c, consts.StatusNotFound, msgNotFound)
		return
	}

	err := h.Nurses.Delete(ctx, id)
	switch {
	case apperrors.IsNotFound(err):
		respondError(c, consts.StatusNotFound, msgNotFound)
	case err != nil:
		h.internalError(ctx, c, "delete", err, msgDeleteFailed, utils.H{"id": id})
	default:
		hlog.CtxInfof(ctx, "nurse deleted id=%d", id)
		c.Status(consts.StatusNoContent)
	}
}

// Login handles POST /nurse/login with a plaintext user/pw match
func (h *NurseHandler) Login(ctx context.Context, c *app.RequestContext) {
	var req model.LoginReq
	if err := bindBody(c, &req); err != nil {
		c.JSON(consts.StatusBadRequest, model.LoginRes{Success: false, Message: msgInvalidJSON})
		return
	}

	nurse, err := h.Nurses.Login(ctx, req.User, req.Pw)
	switch {
	case errors.Is(err, apperrors.ErrInvalidRequest):
		c.JSON(consts.StatusBadRequest, model.LoginRes{Success: false, Message: msgMissingCreds})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.Error(apperrors.NewPublic(err, utils.H{"op": "login", "user": req.User}))
		c.JSON(consts.StatusUnauthorized, model.LoginRes{Success: false, Message: msgInvalidCreds})
	case err != nil:
		hlog.CtxErrorf(ctx, "login failed user=%s: %v", req.User, err)
		c.Error(apperrors.NewPrivate(err, utils.H{"op": "login", "user": req.User}))
		c.JSON(consts.StatusInternalServerError, model.LoginRes{Success: false, Message: msgLoginFailed})
	default:
		hlog.CtxInfof(ctx, "user logged in user=%s", req.User)
		res := model.NewNurseRes(nurse)
		c.JSON(consts.StatusOK, model.LoginRes{Success: true, Message: msgLoginSuccessful, Nurse: &res})
	}
}

func (h *NurseHandler) respondNurse(ctx context.Context, c *app.RequestContext, op string, nurse core.Nurse, err error, meta utils.H) {
	switch {
	case apperrors.IsNotFound(err):
		respondError(c, consts.StatusNotFound, msgNotFound)
	case err != nil:
		h.internalError(ctx, c, op, err, msgLookupFailed, meta)
	default:
		c.JSON(consts.StatusOK, model.NewNurseRes(nurse))
	}
}

// internalError logs the cause with identifiers and answers with a generic message
func (h *NurseHandler) internalError(ctx context.Context, c *app.RequestContext, op string, err error, msg string, meta utils.H) {
	// 存储故障记 error，其余未归类错误记 warn
	if apperrors.IsInternal(err) {
		hlog.CtxErrorf(ctx, "nurse %s failed %v: %v", op, meta, err)
	} else {
		hlog.CtxWarnf(ctx, "nurse %s unexpected error %v: %v", op, meta, err)
	}
	meta["op"] = op
	c.Error(apperrors.NewPrivate(err, meta))
	respondError(c, apperrors.StatusCode(err), msg)
}

// bindBody 通过 Hertz 绑定解析JSON请求体，空请求体视为非法JSON
func bindBody(c *app.RequestContext, v interface{}) error {
	if len(c.Request.Body()) == 0 {
		return apperrors.ErrInvalidRequest
	}
	return c.BindJSON(v)
}

func pathID(c *app.RequestContext) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// 统一错误响应方法
func respondError(c *app.RequestContext, code int, msg string) {
	c.JSON(code, model.ErrorRes{Error: msg})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
