package discussion

import (
	"errors"
	"net/http"

	discussionModel "terminal-terrace/discussion-board/internal/model/discussion"
)

var (
	ErrDiscussionNotFound = errors.New("discussion not found")
	ErrInvalidID          = errors.New("invalid discussion id")
	ErrInvalidForm        = errors.New("invalid request body")
	ErrUpdateConflict     = errors.New("discussion was modified concurrently")
)

// HTTPStatus 供通用错误处理使用的状态码映射
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrDiscussionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidID), errors.Is(err, ErrInvalidForm):
		return http.StatusBadRequest
	case errors.Is(err, discussionModel.ErrInvalidDiscussion):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrUpdateConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
