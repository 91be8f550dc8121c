package services

import (
	"context"
	"errors"
	"testing"

	"lumera_back_end/internal/apierrors"
	"lumera_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(title string, price float64, stock int) *models.Product {
	return &models.Product{
		ID:       gocql.TimeUUID(),
		Title:    title,
		Price:    price,
		Stock:    stock,
		IsActive: true,
	}
}

func newTestDelivery(company string, price float64) *models.Delivery {
	return &models.Delivery{
		ID:           gocql.TimeUUID(),
		Company:      company,
		DeliveryType: "standard",
		Price:        price,
	}
}

type orderTestEnv struct {
	products   *fakeProductStore
	carts      *fakeCartStore
	orders     *fakeOrderStore
	deliveries *fakeDeliveryStore
	notifier   *fakeNotifier
	service    *OrderService
}

func newOrderTestEnv(products *fakeProductStore, carts *fakeCartStore, deliveries *fakeDeliveryStore) *orderTestEnv {
	env := &orderTestEnv{
		products:   products,
		carts:      carts,
		orders:     newFakeOrderStore(),
		deliveries: deliveries,
		notifier:   &fakeNotifier{},
	}
	env.service = NewOrderService(env.orders, env.carts, env.products, env.deliveries, env.notifier)
	return env
}

func TestCreateOrderRequiresDelivery(t *testing.T) {
	env := newOrderTestEnv(newFakeProductStore(), newFakeCartStore(), newFakeDeliveryStore())

	_, err := env.service.CreateOrder(context.Background(), CreateOrderInput{}, nil)
	require.Error(t, err)
	assert.True(t, apierrors.Is(err, apierrors.KindValidation))
}

func TestCreateOrderUnknownDelivery(t *testing.T) {
	env := newOrderTestEnv(newFakeProductStore(), newFakeCartStore(), newFakeDeliveryStore())

	_, err := env.service.CreateOrder(context.Background(), CreateOrderInput{DeliveryID: gocql.TimeUUID().String()}, nil)
	require.Error(t, err)
	assert.True(t, apierrors.Is(err, apierrors.KindNotFound))
}

func TestCreateOrderFromItemsRegisteredUser(t *testing.T) {
	bougie := newTestProduct("Bougie Ambre", 30.0, 10)
	delivery := newTestDelivery("Bpost", 20.0)
	identity := &models.Identity{UserID: "user-1", Email: "claire@example.com"}

	cart := &models.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Items: []models.CartItem{
			{ProductID: bougie.ID.String(), Quantity: 2},
		},
		TotalPrice: 60.0,
	}

	env := newOrderTestEnv(newFakeProductStore(bougie), newFakeCartStore(cart), newFakeDeliveryStore(delivery))

	input := CreateOrderInput{
		Items:      []models.CartItem{{ProductID: bougie.ID.String(), Quantity: 1}},
		DeliveryID: delivery.ID.String(),
		FirstName:  "Claire",
		LastName:   "Martin",
	}

	order, err := env.service.CreateOrder(context.Background(), input, identity)
	require.NoError(t, err)

	// montant = lignes + livraison, toujours
	assert.Equal(t, 30.0+20.0, order.AmountOrder)
	assert.Equal(t, models.StatusProcessing, order.Status)
	assert.Equal(t, "user-1", order.UserID)
	// l'email du compte prime sur celui du formulaire
	assert.Equal(t, "claire@example.com", order.Email)
	assert.NotEmpty(t, order.ID)

	// prix figé au catalogue
	require.Len(t, order.Items, 1)
	assert.Equal(t, 30.0, order.Items[0].Price)

	// stock réservé
	assert.Equal(t, 9, env.products.products[bougie.ID.String()].Stock)

	// le produit commandé quitte le panier
	updated, err := env.carts.FindByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, updated.Items)
	assert.Equal(t, 0.0, updated.TotalPrice)

	// pas d'email de confirmation pour un utilisateur enregistré
	assert.Empty(t, env.notifier.confirmations)
}

func TestCreateOrderFromItemsKeepsOtherCartLines(t *testing.T) {
	ordered := newTestProduct("Bougie Vanille", 15.0, 5)
	kept := newTestProduct("Bougie Santal", 25.0, 5)
	delivery := newTestDelivery("Mondial Relay", 5.0)
	identity := &models.Identity{UserID: "user-2", Email: "paul@example.com"}

	cart := &models.Cart{
		ID:     "cart-2",
		UserID: "user-2",
		Items: []models.CartItem{
			{ProductID: ordered.ID.String(), Quantity: 1},
			{ProductID: kept.ID.String(), Quantity: 2},
		},
		TotalPrice: 65.0,
	}

	env := newOrderTestEnv(newFakeProductStore(ordered, kept), newFakeCartStore(cart), newFakeDeliveryStore(delivery))

	input := CreateOrderInput{
		Items:      []models.CartItem{{ProductID: ordered.ID.String(), Quantity: 1}},
		DeliveryID: delivery.ID.String(),
	}

	_, err := env.service.CreateOrder(context.Background(), input, identity)
	require.NoError(t, err)

	updated, err := env.carts.FindByUserID(context.Background(), "user-2")
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, kept.ID.String(), updated.Items[0].ProductID)
	assert.Equal(t, 50.0, updated.TotalPrice)
}

func TestCreateOrderGuestRequiresEmail(t *testing.T) {
	bougie := newTestProduct("Bougie Figue", 18.0, 3)
	delivery := newTestDelivery("Bpost", 4.5)
	env := newOrderTestEnv(newFakeProductStore(bougie), newFakeCartStore(), newFakeDeliveryStore(delivery))

	input := CreateOrderInput{
		Items:      []models.CartItem{{ProductID: bougie.ID.String(), Quantity: 1}},
		DeliveryID: delivery.ID.String(),
	}

	_, err := env.service.CreateOrder(context.Background(), input, nil)
	require.Error(t, err)
	assert.True(t, apierrors.Is(err, apierrors.KindAuthorizationRequired))
	// rien n'a été réservé ni persisté
	assert.Equal(t, 3, env.products.products[bougie.ID.String()].Stock)
	assert.Empty(t, env.orders.orders)
}

func TestCreateOrderGuestWithEmail(t *testing.T) {
	bougie := newTestProduct("Bougie Figue", 18.0, 3)
	delivery := newTestDelivery("Bpost", 4.5)
	env := newOrderTestEnv(newFakeProductStore(bougie), newFakeCartStore(), newFakeDeliveryStore(delivery))

	input := CreateOrderInput{
		Items:      []models.CartItem{{ProductID: bougie.ID.String(), Quantity: 2}},
		DeliveryID: delivery.ID.String(),
		Email:      "invite@example.com",
	}

	order, err := env.service.CreateOrder(context.Background(), input, nil)
	require.NoError(t, err)
	assert.Equal(t, "invite@example.com", order.Email)
	assert.Equal(t, "", order.UserID)
	assert.Equal(t, 18.0*2+4.5, order.AmountOrder)

	// confirmation envoyée à l'invité
	require.Len(t, env.notifier.confirmations, 1)
	assert.Equal(t, order.ID, env.notifier.confirmations[0].ID)
}

func TestCreateOrderGuestNotificationFailureIsNotFatal(t *testing.T) {
	bougie := newTestProduct("Bougie Figue", 18.0, 3)
	delivery := newTestDelivery("Bpost", 4.5)
	env := newOrderTestEnv(newFakeProductStore(bougie), newFakeCartStore(), newFakeDeliveryStore(delivery))
	env.notifier.sendErr = errors.New("smtp indisponible")

	input := CreateOrderInput{
		Items:      []models.CartItem{{ProductID: bougie.ID.String(), Quantity: 1}},
		DeliveryID: delivery.ID.String(),
		Email:      "invite@example.com",
	}

	order, err := env.service.CreateOrder(context.Background(), input, nil)
	require.NoError(t, err)
	// commande persistée malgré l'échec d'envoi
	_, err = env.orders.FindByID(context.Background(), order.ID)
	assert.NoError(t, err)
}

func TestOrderPriceUnaffectedByCatalogChange(t *testing.T) {
	bougie := newTestProduct("Bougie Ambre", 30.0, 10)
	delivery := newTestDelivery("Bpost", 20.0)
	products := newFakeProductStore(bougie)
	env := newOrderTestEnv(products, newFakeCartStore(), newFakeDeliveryStore(delivery))

	input := CreateOrderInput{
		Items:      []models.CartItem{{ProductID: bougie.ID.String(), Quantity: 2}},
		DeliveryID: delivery.ID.String(),
		Email:      "invite@example.com",
	}

	order, err := env.service.CreateOrder(context.Background(), input, nil)
	require.NoError(t, err)
	require.Equal(t, 30.0*2+20.0, order.AmountOrder)

	// le prix catalogue change après coup
	products.products[bougie.ID.String()].Price = 45.0

	// la commande relue garde le prix figé à la création
	stored, err := env.orders.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 30.0, stored.Items[0].Price)
	assert.Equal(t, 30.0*2+20.0, stored.AmountOrder)
}

func TestCreateOrderInsufficientStockFailsOrder(t *testing.T) {
	bougie := newTestProduct("Bougie Rose", 12.0, 1)
	delivery := newTestDelivery("Bpost", 4.5)
	env := newOrderTestEnv(newFakeProductStore(bougie), newFakeCartStore(), newFakeDeliveryStore(delivery))

	input := CreateOrderInput{
		Items:      []models.CartItem{{ProductID: bougie.ID.String(), Quantity: 2}},
		DeliveryID: delivery.ID.String(),
		Email:      "invite@example.com",
	}

	_, err := env.service.CreateOrder(context.Background(), input, nil)
	require.Error(t, err)
	assert.True(t, apierrors.Is(err, apierrors.KindValidation))
	assert.Contains(t, err.Error(), "stock insuffisant")
	assert.Empty(t, env.orders.orders)
	assert.Equal(t, 1, env.products.products[bougie.ID.String()].Stock)
}

func TestCreateOrderPartialDecrementsAreNotCompensated(t *testing.T) {
	ok := newTestProduct("Bougie Cèdre", 20.0, 5)
	short := newTestProduct("Bougie Musc", 22.0, 0)
	delivery := newTestDelivery("Bpost", 4.5)
	env := newOrderTestEnv(newFakeProductStore(ok, short), newFakeCartStore(), newFakeDeliveryStore(delivery))

	input := CreateOrderInput{
		Items: []models.CartItem{
			{ProductID: ok.ID.String(), Quantity: 1},
			{ProductID: short.ID.String(), Quantity: 1},
		},
		DeliveryID: delivery.ID.String(),
		Email:      "invite@example.com",
	}

	_, err := env.service.CreateOrder(context.Background(), input, nil)
	require.Error(t, err)
	assert.Empty(t, env.orders.orders)
	// le premier décrément reste appliqué, il n'y a pas de rollback
	assert.Equal(t, 4, env.products.products[ok.ID.String()].Stock)
}

func TestCreateOrderRejectsInvalidItems(t *testing.T) {
	delivery := newTestDelivery("Bpost", 4.5)
	env := newOrderTestEnv(newFakeProductStore(), newFakeCartStore(), newFakeDeliveryStore(delivery))

	cases := []struct {
		name  string
		items []models.CartItem
	}{
		{"aucune ligne", nil},
		{"quantité nulle", []models.CartItem{{ProductID: "p1", Quantity: 0}}},
		{"quantité négative", []models.CartItem{{ProductID: "p1", Quantity: -1}}},
		{"produit vide", []models.CartItem{{ProductID: "", Quantity: 1}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := CreateOrderInput{Items: tc.items, DeliveryID: delivery.ID.String(), Email: "x@example.com"}
			_, err := env.service.CreateOrder(context.Background(), input, nil)
			require.Error(t, err)
			assert.True(t, apierrors.Is(err, apierrors.KindValidation))
		})
	}
}

func TestCreateOrderFromCart(t *testing.T) {
	bougie := newTestProduct("Bougie Ambre", 30.0, 10)
	delivery := newTestDelivery("Bpost", 20.0)

	cart := &models.Cart{
		ID:     "cart-3",
		UserID: "user-3",
		Items: []models.CartItem{
			{ProductID: bougie.ID.String(), Quantity: 2},
		},
		TotalPrice: 60.0,
	}

	env := newOrderTestEnv(newFakeProductStore(bougie), newFakeCartStore(cart), newFakeDeliveryStore(delivery))

	input := CreateOrderInput{
		CartID:     "cart-3",
		DeliveryID: delivery.ID.String(),
		FirstName:  "Luc",
	}

	order, err := env.service.CreateOrder(context.Background(), input, nil)
	require.NoError(t, err)

	// le total du panier fait foi, livraison incluse
	assert.Equal(t, 60.0+20.0, order.AmountOrder)
	assert.Equal(t, "user-3", order.UserID)
	assert.Equal(t, models.StatusProcessing, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 30.0, order.Items[0].Price)

	// la création depuis panier ne réserve pas le stock
	assert.Equal(t, 10, env.products.products[bougie.ID.String()].Stock)
	assert.Empty(t, env.products.decrements)
}

func TestCreateOrderFromUnknownCart(t *testing.T) {
	delivery := newTestDelivery("Bpost", 4.5)
	env := newOrderTestEnv(newFakeProductStore(), newFakeCartStore(), newFakeDeliveryStore(delivery))

	input := CreateOrderInput{CartID: "nope", DeliveryID: delivery.ID.String()}
	_, err := env.service.CreateOrder(context.Background(), input, nil)
	require.Error(t, err)
	assert.True(t, apierrors.Is(err, apierrors.KindNotFound))
}

func TestChangeStatusLegalTransitions(t *testing.T) {
	cases := []struct {
		from models.OrderStatus
		to   models.OrderStatus
	}{
		{models.StatusProcessing, models.StatusAccepted},
		{models.StatusAccepted, models.StatusSent},
		{models.StatusSent, models.StatusReceived},
		{models.StatusProcessing, models.StatusCanceled},
		{models.StatusAccepted, models.StatusCanceled},
		{models.StatusSent, models.StatusCanceled},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			env := newOrderTestEnv(newFakeProductStore(), newFakeCartStore(), newFakeDeliveryStore())
			require.NoError(t, env.orders.Save(context.Background(), &models.Order{ID: "o1", Status: tc.from}))

			updated, err := env.service.ChangeStatus(context.Background(), "o1", tc.to)
			require.NoError(t, err)
			assert.Equal(t, tc.to, updated.Status)
			// le client est notifié du changement
			require.Len(t, env.notifier.statusUpdates, 1)
			assert.Equal(t, tc.to, env.notifier.statusUpdates[0])
		})
	}
}

func TestChangeStatusIllegalTransitions(t *testing.T) {
	cases := []struct {
		from models.OrderStatus
		to   models.OrderStatus
	}{
		{models.StatusProcessing, models.StatusSent},
		{models.StatusProcessing, models.StatusReceived},
		{models.StatusAccepted, models.StatusReceived},
		{models.StatusSent, models.StatusAccepted},
		{models.StatusCanceled, models.StatusAccepted},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			env := newOrderTestEnv(newFakeProductStore(), newFakeCartStore(), newFakeDeliveryStore())
			require.NoError(t, env.orders.Save(context.Background(), &models.Order{ID: "o1", Status: tc.from}))

			_, err := env.service.ChangeStatus(context.Background(), "o1", tc.to)
			require.Error(t, err)
			assert.True(t, apierrors.Is(err, apierrors.KindIllegalTransition))
			assert.Empty(t, env.notifier.statusUpdates)

			// le statut n'a pas bougé
			order, err := env.orders.FindByID(context.Background(), "o1")
			require.NoError(t, err)
			assert.Equal(t, tc.from, order.Status)
		})
	}
}

func TestChangeStatusReceivedIsTerminal(t *testing.T) {
	env := newOrderTestEnv(newFakeProductStore(), newFakeCartStore(), newFakeDeliveryStore())
	require.NoError(t, env.orders.Save(context.Background(), &models.Order{ID: "o1", Status: models.StatusReceived}))

	for _, to := range []models.OrderStatus{
		models.StatusProcessing, models.StatusAccepted, models.StatusSent,
		models.StatusReceived, models.StatusCanceled,
	} {
		_, err := env.service.ChangeStatus(context.Background(), "o1", to)
		require.Error(t, err, "received -> %s devrait être refusé", to)
		assert.True(t, apierrors.Is(err, apierrors.KindIllegalTransition))
	}
}

func TestChangeStatusUnknownStatus(t *testing.T) {
	env := newOrderTestEnv(newFakeProductStore(), newFakeCartStore(), newFakeDeliveryStore())
	require.NoError(t, env.orders.Save(context.Background(), &models.Order{ID: "o1", Status: models.StatusProcessing}))

	_, err := env.service.ChangeStatus(context.Background(), "o1", "expédiée")
	require.Error(t, err)
	assert.True(t, apierrors.Is(err, apierrors.KindValidation))
}

func TestChangeStatusUnknownOrder(t *testing.T) {
	env := newOrderTestEnv(newFakeProductStore(), newFakeCartStore(), newFakeDeliveryStore())

	_, err := env.service.ChangeStatus(context.Background(), "absente", models.StatusAccepted)
	require.Error(t, err)
	assert.True(t, apierrors.Is(err, apierrors.KindNotFound))
}

func TestChangeStatusNotificationFailureIsNotFatal(t *testing.T) {
	env := newOrderTestEnv(newFakeProductStore(), newFakeCartStore(), newFakeDeliveryStore())
	env.notifier.sendErr = errors.New("smtp indisponible")
	require.NoError(t, env.orders.Save(context.Background(), &models.Order{ID: "o1", Status: models.StatusProcessing}))

	updated, err := env.service.ChangeStatus(context.Background(), "o1", models.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, updated.Status)
}
