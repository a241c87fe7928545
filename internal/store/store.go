package store

import (
	"context"
	"errors"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
	"github.com/Pasindu991182/food-delivery-system/internal/seqid"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID is returned when an insert loses the race for a
	// sequential identifier. Retrying the whole creation computes a fresh one.
	ErrDuplicateID = errors.New("sequential identifier already taken")

	// ErrConflict is returned when a unique field other than the sequential
	// identifier (email, nic) is already in use.
	ErrConflict = errors.New("unique field already in use")

	// ErrAlreadyPersisted is returned when Create is called with an entity
	// that already has a primary key.
	ErrAlreadyPersisted = errors.New("entity already persisted")
)

// Page selects a window of a list ordered newest first.
type Page struct {
	Limit  int
	Offset int
}

// Stats holds aggregate figures for the admin dashboard.
type Stats struct {
	Users           int            `json:"users"`
	Foods           int            `json:"foods"`
	Orders          int            `json:"orders"`
	DeliveryPersons int            `json:"delivery_persons"`
	Reviews         int            `json:"reviews"`
	PendingMessages int            `json:"pending_messages"`
	OrdersByStatus  map[string]int `json:"orders_by_status"`
	Revenue         float64        `json:"revenue"`
}

// Store defines the persistence operations for every aggregate. Create
// methods assign the entity's primary key and sequential identifier.
type Store interface {
	seqid.Sequencer

	CreateUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context, role string, p Page) ([]*model.User, int, error)
	UpdateUser(ctx context.Context, u *model.User) error
	DeleteUser(ctx context.Context, id string) error

	CreateFood(ctx context.Context, f *model.Food) error
	GetFood(ctx context.Context, id string) (*model.Food, error)
	ListFoods(ctx context.Context, category string, p Page) ([]*model.Food, int, error)
	UpdateFood(ctx context.Context, f *model.Food) error
	DeleteFood(ctx context.Context, id string) error

	CreateOrder(ctx context.Context, o *model.Order) error
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context, status string, p Page) ([]*model.Order, int, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]*model.Order, error)
	UpdateOrder(ctx context.Context, o *model.Order) error
	UpdateOrderStatus(ctx context.Context, id, status string) error
	DeleteOrder(ctx context.Context, id string) error

	CreateDeliveryPerson(ctx context.Context, p *model.DeliveryPerson) error
	GetDeliveryPerson(ctx context.Context, id string) (*model.DeliveryPerson, error)
	FindDeliveryPerson(ctx context.Context, nic, email string) (*model.DeliveryPerson, error)
	ListDeliveryPersons(ctx context.Context, p Page) ([]*model.DeliveryPerson, int, error)
	UpdateDeliveryPerson(ctx context.Context, p *model.DeliveryPerson) error
	DeleteDeliveryPerson(ctx context.Context, id string) error

	CreateAssignment(ctx context.Context, a *model.DeliveryAssignment) error
	GetAssignment(ctx context.Context, id string) (*model.DeliveryAssignment, error)
	ListAssignments(ctx context.Context, p Page) ([]*model.DeliveryAssignment, int, error)
	UpdateAssignmentStatus(ctx context.Context, id, status string) error
	DeleteAssignment(ctx context.Context, id string) error

	CreateReview(ctx context.Context, r *model.Review) error
	GetReview(ctx context.Context, id string) (*model.Review, error)
	ListReviews(ctx context.Context, p Page) ([]*model.Review, int, error)
	ListReviewsByFood(ctx context.Context, foodID string) ([]*model.Review, error)
	UpdateReview(ctx context.Context, r *model.Review) error
	DeleteReview(ctx context.Context, id string) error

	CreateContactMessage(ctx context.Context, m *model.ContactMessage) error
	GetContactMessage(ctx context.Context, id string) (*model.ContactMessage, error)
	ListContactMessages(ctx context.Context, p Page) ([]*model.ContactMessage, int, error)
	UpdateContactMessage(ctx context.Context, m *model.ContactMessage) error
	DeleteContactMessage(ctx context.Context, id string) error

	AddCartItem(ctx context.Context, userID, foodID string) error
	RemoveCartItem(ctx context.Context, userID, foodID string) error
	GetCart(ctx context.Context, userID string) ([]model.CartItem, error)

	GetStats(ctx context.Context) (*Stats, error)
	Ping(ctx context.Context) error
	Close() error
}
