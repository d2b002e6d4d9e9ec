package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/shoppingcart/internal/cart"
	"github.com/angelmondragon/shoppingcart/internal/cartfile"
	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
	"github.com/angelmondragon/shoppingcart/pkg/logger"
	"github.com/angelmondragon/shoppingcart/pkg/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OpAdd         = "add"
	OpUpdate      = "update"
	OpDelete      = "delete"
	OpSelect      = "select"
	OpClearFields = "clear_fields"
	OpSave        = "save"
	OpLoad        = "load"
)

// Message is the short outcome shown to the user after a command.
type Message struct {
	Title string
	Text  string
}

func (m Message) String() string {
	return fmt.Sprintf("[%s] %s", m.Title, m.Text)
}

func (m Message) IsError() bool {
	return m.Title == pkgerrors.TitleError
}

func success(text string) Message {
	return Message{Title: pkgerrors.TitleSuccess, Text: text}
}

func failure(text string) Message {
	return Message{Title: pkgerrors.TitleError, Text: text}
}

// Fields mirrors the three text inputs; values are kept exactly as typed.
type Fields struct {
	Name     string
	Price    string
	Quantity string
}

func (f Fields) input() cart.ItemInput {
	return cart.ItemInput{Name: f.Name, Price: f.Price, Quantity: f.Quantity}
}

// Session binds one cart store to its input fields, selection and cart file.
type Session struct {
	ID       string
	store    *cart.Store
	file     cartfile.File
	fields   Fields
	selected int
	currency string
	restore  bool

	log      *logger.Logger
	metrics  *metrics.CartMetrics
	gatherer prometheus.Gatherer
}

type SessionParams struct {
	Store          *cart.Store
	File           cartfile.File
	CurrencySymbol string
	Logger         *logger.Logger
	Metrics        *metrics.CartMetrics
	Gatherer       prometheus.Gatherer
	// RestoreOnFailedLoad puts the previous items back when Load fails instead
	// of leaving the cart empty.
	RestoreOnFailedLoad bool
}

// NewSession wires a session; a nil store gets a fresh empty cart.
func NewSession(p SessionParams) *Session {
	if p.Store == nil {
		p.Store = cart.NewStore()
	}
	if p.File.Path == "" {
		p.File = cartfile.NewFile("")
	}
	if p.CurrencySymbol == "" {
		p.CurrencySymbol = "$"
	}
	if p.Logger == nil {
		p.Logger = logger.Nop()
	}
	return &Session{
		ID:       uuid.NewString(),
		store:    p.Store,
		file:     p.File,
		currency: p.CurrencySymbol,
		restore:  p.RestoreOnFailedLoad,
		log:      p.Logger,
		metrics:  p.Metrics,
		gatherer: p.Gatherer,
	}
}

// Context attaches the session id to ctx for logging.
func (s *Session) Context(ctx context.Context) context.Context {
	return s.log.WithSessionID(ctx, s.ID)
}

func (s *Session) Fields() Fields {
	return s.fields
}

// Selected returns the selected item number, 0 when nothing is selected.
func (s *Session) Selected() int {
	return s.selected
}

// SetField stores raw text for name, price or quantity (alias qty).
func (s *Session) SetField(field, value string) error {
	switch strings.ToLower(field) {
	case "name":
		s.fields.Name = value
	case "price":
		s.fields.Price = value
	case "quantity", "qty":
		s.fields.Quantity = value
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown field %q", field))
	}
	return nil
}

// Select previews an item into the input fields.
func (s *Session) Select(ctx context.Context, number int) Message {
	item, ok := s.store.Get(number)
	if !ok {
		err := pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("item %d not found", number))
		s.record(OpSelect, err)
		return s.failureFor(s.log.WithItemNumber(ctx, number), OpSelect, err)
	}
	s.selected = number
	s.fields = Fields{
		Name:     item.Name,
		Price:    item.UnitPrice.String(),
		Quantity: fmt.Sprint(item.Quantity),
	}
	s.record(OpSelect, nil)
	return success(fmt.Sprintf("Selected item %d", number))
}

func (s *Session) Deselect() {
	s.selected = 0
}

func (s *Session) Add(ctx context.Context) Message {
	item, err := s.store.Add(s.fields.input())
	s.record(OpAdd, err)
	if err != nil {
		return s.failureFor(ctx, OpAdd, err)
	}
	s.log.Info(s.log.WithItemNumber(ctx, item.Number), "product added")
	s.ClearFields()
	return success("Product added successfully")
}

func (s *Session) Update(ctx context.Context) Message {
	if s.selected == 0 {
		return failure("No item selected")
	}
	item, err := s.store.Update(s.selected, s.fields.input())
	s.record(OpUpdate, err)
	if err != nil {
		return s.failureFor(s.log.WithItemNumber(ctx, s.selected), OpUpdate, err)
	}
	s.log.Info(s.log.WithItemNumber(ctx, item.Number), "product updated")
	s.ClearFields()
	return success("Product updated successfully")
}

func (s *Session) Delete(ctx context.Context) Message {
	if s.selected == 0 {
		return failure("No item selected")
	}
	number := s.selected
	err := s.store.Delete(number)
	s.record(OpDelete, err)
	if err != nil {
		return s.failureFor(s.log.WithItemNumber(ctx, number), OpDelete, err)
	}
	s.selected = 0
	s.log.Info(s.log.WithItemNumber(ctx, number), "product deleted")
	s.ClearFields()
	return success("Product deleted successfully")
}

func (s *Session) ClearFields() {
	s.fields = Fields{}
}

func (s *Session) Save(ctx context.Context) Message {
	ctx = s.log.WithCartFile(ctx, s.file.Path)
	err := s.file.Save(s.store.Items())
	s.record(OpSave, err)
	if err != nil {
		s.log.Error(ctx, "failed to save cart", err)
		return failure("Error saving cart: " + pkgerrors.Describe(err))
	}
	s.log.Info(ctx, "cart saved")
	return success("Cart saved successfully")
}

// Load empties the cart before reading, so a failed load leaves it empty unless
// the session was built with RestoreOnFailedLoad.
func (s *Session) Load(ctx context.Context) Message {
	ctx = s.log.WithCartFile(ctx, s.file.Path)
	var snapshot []cart.Item
	if s.restore {
		snapshot = s.store.Snapshot()
	}
	s.store.Clear()
	s.selected = 0

	res, err := s.file.Load()
	for _, skipped := range res.Skipped {
		s.log.Warn(s.log.WithFields(ctx, map[string]any{
			"line":   skipped.Line,
			"reason": skipped.Reason,
		}), "skipped malformed cart line")
	}
	if err != nil {
		s.record(OpLoad, err)
		s.log.Error(ctx, "failed to load cart", err)
		if s.restore {
			s.store.Restore(snapshot)
			s.log.Warn(s.log.WithField(ctx, "items", s.store.Len()), "restored cart after failed load")
		}
		return failure("Error loading cart: " + pkgerrors.Describe(err))
	}

	if dropped := s.store.Replace(res.Items); dropped > 0 {
		s.log.Warn(s.log.WithField(ctx, "dropped", dropped), "dropped items with duplicate names")
	}
	s.record(OpLoad, nil)
	s.log.Info(s.log.WithField(ctx, "items", s.store.Len()), "cart loaded")
	return success("Cart loaded successfully")
}

// Operations returns the recorded command counters, if a gatherer was wired.
func (s *Session) Operations() ([]metrics.OperationCount, error) {
	if s.gatherer == nil {
		return nil, nil
	}
	return metrics.Operations(s.gatherer)
}

func (s *Session) record(op string, err error) {
	s.metrics.RecordOperation(op, err)
	total, _ := s.store.Total().Float64()
	s.metrics.ObserveCart(s.store.Len(), total)
}

func (s *Session) failureFor(ctx context.Context, op string, err error) Message {
	s.log.Debug(s.log.WithFields(ctx, map[string]any{
		"operation": op,
		"error":     pkgerrors.Dump(err),
	}), "command rejected")
	return failure(userMessage(err))
}

// userMessage maps a core error onto the short text shown to the user.
func userMessage(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return pkgerrors.MetadataFor(pkgerrors.CodeInternal).PublicMessage
	}
	if typed.Code() == pkgerrors.CodeValidation && strings.Contains(typed.Message(), "negative") {
		return "Price and Quantity must not be negative"
	}
	return pkgerrors.MetadataFor(typed.Code()).PublicMessage
}
