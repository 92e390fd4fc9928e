package discussion

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"terminal-terrace/discussion-board/internal/flash"
	"terminal-terrace/discussion-board/internal/middleware"
	"terminal-terrace/discussion-board/internal/observability"
)

// Flasher 一次性提示
type Flasher interface {
	Add(c *gin.Context, category flash.Category, text string)
	Pop(c *gin.Context) []flash.Message
}

// Action 处理请求并给出结果；出错时 Result 只用于携带建议跳转地址
type Action func(c *gin.Context) (Result, error)

// HandlerConfig 处理器配置
type HandlerConfig struct {
	BasePath   string
	Categories []string
}

// DiscussionHandler 讨论帖处理器
type DiscussionHandler struct {
	service    DiscussionService
	flash      Flasher
	logger     *zap.Logger
	metrics    *observability.Collector
	basePath   string
	categories []string
}

// NewDiscussionHandler 创建处理器实例
func NewDiscussionHandler(
	service DiscussionService,
	flasher Flasher,
	logger *zap.Logger,
	metrics *observability.Collector,
	conf HandlerConfig,
) *DiscussionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	basePath := conf.BasePath
	if basePath == "" {
		basePath = "/discussions"
	}
	return &DiscussionHandler{
		service:    service,
		flash:      flasher,
		logger:     logger,
		metrics:    metrics,
		basePath:   basePath,
		categories: conf.Categories,
	}
}

func (h *DiscussionHandler) listPath() string { return h.basePath }

func (h *DiscussionHandler) newPath() string { return h.basePath + "/new" }

func (h *DiscussionHandler) detailPath(id uint) string {
	return fmt.Sprintf("%s/%d", h.basePath, id)
}

// New 新建表单，没有需要准备的数据
// GET /discussions/new
func (h *DiscussionHandler) New(c *gin.Context) (Result, error) {
	return Render(nil), nil
}

// Create 创建讨论帖
// POST /discussions
func (h *DiscussionHandler) Create(c *gin.Context) (Result, error) {
	form, err := bindForm(c)
	if err != nil {
		return h.createFailed(c, err)
	}

	var author *uint
	if userID, ok := middleware.CurrentUserID(c); ok {
		author = &userID
	}

	discussion, err := h.service.Create(c.Request.Context(), GetDiscussionParams(form, author))
	if err != nil {
		return h.createFailed(c, err)
	}

	h.flash.Add(c, flash.Success, "Discussion created successfully!")
	return RedirectTo(h.listPath(), gin.H{"discussion": discussion}), nil
}

func (h *DiscussionHandler) createFailed(c *gin.Context, err error) (Result, error) {
	h.logger.Error("Error saving discussion", zap.Error(err))
	h.flash.Add(c, flash.Error, fmt.Sprintf("Failed to create discussion because: %s.", err.Error()))
	return RedirectTo(h.newPath(), nil), err
}

// Index 讨论帖列表
// GET /discussions
func (h *DiscussionHandler) Index(c *gin.Context) (Result, error) {
	discussions, err := h.service.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Error fetching discussions", zap.Error(err))
		return Result{}, err
	}
	return Render(gin.H{"discussions": discussions}), nil
}

// Show 讨论帖详情，每次访问浏览量加一
// GET /discussions/:id
func (h *DiscussionHandler) Show(c *gin.Context) (Result, error) {
	id, err := parseID(c)
	if err != nil {
		h.logger.Warn("Error fetching discussion by ID", zap.Error(err))
		return Result{}, err
	}

	discussion, err := h.service.View(c.Request.Context(), id)
	if errors.Is(err, ErrDiscussionNotFound) {
		return RedirectTo(h.listPath(), nil), nil
	}
	if err != nil {
		h.logger.Error("Error fetching discussion by ID", zap.Uint("discussion_id", id), zap.Error(err))
		return Result{}, err
	}
	return Render(gin.H{"discussion": discussion}), nil
}

// Edit 编辑表单
// GET /discussions/:id/edit
func (h *DiscussionHandler) Edit(c *gin.Context) (Result, error) {
	id, err := parseID(c)
	if err != nil {
		h.logger.Warn("Error fetching discussion by ID for editing", zap.Error(err))
		return Result{}, err
	}

	discussion, err := h.service.Get(c.Request.Context(), id)
	if errors.Is(err, ErrDiscussionNotFound) {
		return RedirectTo(h.listPath(), nil), nil
	}
	if err != nil {
		h.logger.Error("Error fetching discussion by ID for editing", zap.Uint("discussion_id", id), zap.Error(err))
		return Result{}, err
	}
	return Render(gin.H{"discussion": discussion}), nil
}

// Update 更新讨论帖，作者保持不变
// PUT/PATCH /discussions/:id
func (h *DiscussionHandler) Update(c *gin.Context) (Result, error) {
	id, err := parseID(c)
	if err != nil {
		h.logger.Warn("Error updating discussion", zap.Error(err))
		return Result{}, err
	}

	form, err := bindForm(c)
	if err != nil {
		h.logger.Warn("Error updating discussion", zap.Uint("discussion_id", id), zap.Error(err))
		return Result{}, err
	}

	discussion, err := h.service.Update(c.Request.Context(), id, GetDiscussionParams(form, nil))
	if err != nil {
		h.logger.Error("Error updating discussion", zap.Uint("discussion_id", id), zap.Error(err))
		return Result{}, err
	}
	return RedirectTo(h.detailPath(discussion.ID), gin.H{"discussion": discussion}), nil
}

// Delete 删除讨论帖
// DELETE /discussions/:id
func (h *DiscussionHandler) Delete(c *gin.Context) (Result, error) {
	id, err := parseID(c)
	if err == nil {
		err = h.service.Delete(c.Request.Context(), id)
	}
	if err != nil {
		h.logger.Error("Error deleting discussion by ID", zap.String("id", c.Param("id")), zap.Error(err))
		h.flash.Add(c, flash.Error, fmt.Sprintf("Failed to delete discussion because: %s.", err.Error()))
		return Result{}, err
	}

	h.flash.Add(c, flash.Success, "Discussion deleted successfully!")
	return RedirectTo(h.listPath(), nil), nil
}

func parseID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return uint(id), nil
}

func bindForm(c *gin.Context) (DiscussionForm, error) {
	var form DiscussionForm
	b := binding.Default(c.Request.Method, c.ContentType())
	if err := c.ShouldBindWith(&form, b); err != nil {
		return form, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	// 仅 HTML 表单的单个标签输入按逗号拆分，JSON 原样保留
	switch b {
	case binding.Form, binding.FormPost, binding.FormMultipart:
		form.normalizeTags()
	}
	return form, nil
}
