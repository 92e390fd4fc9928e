package discussion

import (
	"context"
	"slices"
	"sync"
	"time"

	"gorm.io/datatypes"

	discussionModel "terminal-terrace/discussion-board/internal/model/discussion"
	"terminal-terrace/discussion-board/internal/model/user"
)

// memoryRepository 测试用内存实现，返回值均为副本
type memoryRepository struct {
	mu          sync.Mutex
	nextID      uint
	discussions map[uint]discussionModel.Discussion
	comments    map[uint][]discussionModel.Comment
	users       map[uint]user.User

	// 故障注入
	errCreate    error
	errFind      error
	errUpdate    error
	errIncrement error
	errDelete    error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		nextID:      1,
		discussions: make(map[uint]discussionModel.Discussion),
		comments:    make(map[uint][]discussionModel.Comment),
		users:       make(map[uint]user.User),
	}
}

func (r *memoryRepository) addUser(id uint, username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[id] = user.User{ID: id, Username: username}
}

// seed 按给定 ID 写入
func (r *memoryRepository) seed(d discussionModel.Discussion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.discussions[d.ID] = d
	if d.ID >= r.nextID {
		r.nextID = d.ID + 1
	}
}

func (r *memoryRepository) addComment(discussionID uint, content string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments[discussionID] = append(r.comments[discussionID], discussionModel.Comment{
		ID:           uint(len(r.comments[discussionID]) + 1),
		DiscussionID: discussionID,
		Content:      content,
	})
}

// stored 不带关联的原始记录
func (r *memoryRepository) stored(id uint) (discussionModel.Discussion, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.discussions[id]
	return d, ok
}

func (r *memoryRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.discussions)
}

func (r *memoryRepository) Create(_ context.Context, d *discussionModel.Discussion) error {
	if r.errCreate != nil {
		return r.errCreate
	}
	if err := d.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	d.ID = r.nextID
	d.CreatedAt = now
	d.UpdatedAt = now
	r.nextID++
	r.discussions[d.ID] = clone(*d)
	return nil
}

func (r *memoryRepository) FindAll(_ context.Context) ([]discussionModel.Discussion, error) {
	if r.errFind != nil {
		return nil, r.errFind
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]discussionModel.Discussion, 0, len(r.discussions))
	for _, d := range r.discussions {
		list = append(list, r.withAuthor(d))
	}
	slices.SortFunc(list, func(a, b discussionModel.Discussion) int {
		return int(a.ID) - int(b.ID)
	})
	return list, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id uint) (*discussionModel.Discussion, error) {
	if r.errFind != nil {
		return nil, r.errFind
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(id)
}

func (r *memoryRepository) UpdateByID(_ context.Context, id uint, fields map[string]any) (*discussionModel.Discussion, error) {
	if r.errUpdate != nil {
		return nil, r.errUpdate
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.discussions[id]
	if !ok {
		return nil, ErrDiscussionNotFound
	}
	updated := applyFields(&d, fields)
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now()
	r.discussions[id] = clone(*updated)
	return r.load(id)
}

func (r *memoryRepository) IncrementViews(_ context.Context, id uint) error {
	if r.errIncrement != nil {
		return r.errIncrement
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.discussions[id]
	if !ok {
		return ErrDiscussionNotFound
	}
	d.Views++
	r.discussions[id] = d
	return nil
}

func (r *memoryRepository) DeleteByID(_ context.Context, id uint) error {
	if r.errDelete != nil {
		return r.errDelete
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.discussions, id)
	return nil
}

func (r *memoryRepository) load(id uint) (*discussionModel.Discussion, error) {
	d, ok := r.discussions[id]
	if !ok {
		return nil, ErrDiscussionNotFound
	}
	out := r.withAuthor(d)
	out.Comments = slices.Clone(r.comments[id])
	return &out, nil
}

func (r *memoryRepository) withAuthor(d discussionModel.Discussion) discussionModel.Discussion {
	out := clone(d)
	if u, ok := r.users[d.AuthorID]; ok {
		out.Author = &u
	}
	return out
}

func clone(d discussionModel.Discussion) discussionModel.Discussion {
	d.Tags = datatypes.JSONSlice[string](slices.Clone([]string(d.Tags)))
	d.Author = nil
	d.Comments = nil
	return d
}
