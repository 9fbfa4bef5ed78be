package service

import (
	"github.com/aliskhannn/loftfit-bot/internal/domain/entities"
)

// ProductCatalog resolves products by id.
type ProductCatalog interface {
	GetProductByID(id entities.ProductID) (*entities.Product, error)
}

// Notifier receives analytics notifications. Implementations must return
// promptly and never report failure back to the caller.
type Notifier interface {
	Notify(name string, payload entities.Payload)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(name string, payload entities.Payload)

// Notify calls fn(name, payload).
func (fn NotifierFunc) Notify(name string, payload entities.Payload) {
	fn(name, payload)
}
