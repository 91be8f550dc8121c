package handlers

import (
	"lumera_back_end/internal/services"
	"lumera_back_end/internal/store"
)

// Câblage des services sur les stores ScyllaDB/Redis. Les handlers
// partagent ces instances, les stores sont sans état.
var (
	productStore  = store.NewScyllaProductStore()
	cartStore     = store.NewRedisCartStore()
	orderStore    = store.NewScyllaOrderStore()
	deliveryStore = store.NewScyllaDeliveryStore()
	notifier      = services.NewMailNotifier()

	cartService  = services.NewCartService(cartStore, productStore)
	orderService = services.NewOrderService(orderStore, cartStore, productStore, deliveryStore, notifier)
)
