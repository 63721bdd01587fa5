package queries_test

import (
	"time"

	"buyback/internal/core/domain/model/kernel"
	"buyback/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// buildOrder creates an order and walks it to the requested status through
// the regular domain transitions.
func buildOrder(s *suite.Suite, number string, target order.Status) *order.Order {
	shipping, err := order.NewShippingInfo(
		"Ada Lovelace", "12 Analytical Way", "Reno", "NV", "89501", "US",
		"ada@example.com", "+1 775 555 0100")
	s.Require().NoError(err)

	orderNumber, err := kernel.NewOrderNumber(number)
	s.Require().NoError(err)

	quote, err := kernel.NewMoney(420.00)
	s.Require().NoError(err)

	now := time.Now().UTC().Truncate(time.Microsecond)
	o, err := order.NewOrder(kernel.NewUUID(), orderNumber, shipping, quote, now)
	s.Require().NoError(err)

	if target == order.PendingShipment {
		return o
	}
	s.Require().NoError(o.MarkLabelGenerated(now))
	if target == order.LabelGenerated {
		return o
	}

	price, err := kernel.NewMoney(350.00)
	s.Require().NoError(err)
	reoffer, err := order.NewReoffer(price, []string{"cracked screen"}, "scratched back", now)
	s.Require().NoError(err)
	s.Require().NoError(o.SubmitReoffer(reoffer))

	switch target {
	case order.ReofferPending:
	case order.OfferAccepted:
		s.Require().NoError(o.Accept(now))
	case order.AutoAccepted:
		s.Require().NoError(o.AutoAccept(now))
	case order.ReturnRequested:
		s.Require().NoError(o.Decline(now))
	case order.ReturnLabelGenerated:
		s.Require().NoError(o.Decline(now))
		s.Require().NoError(o.MarkReturnLabelGenerated())
	default:
		s.Require().FailNow("unsupported target status", "%s", target)
	}

	return o
}
