package usecase

import (
	"context"
	"fmt"
	"math"

	"booking-service/src/internal/entity"
	"booking-service/src/internal/model"
	"booking-service/src/internal/repository"
	httpError "booking-service/src/pkg/http-error"
	"booking-service/src/pkg/log"
	"booking-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
)

type PricingUseCase struct {
	Log              log.Log
	Validate         *validator.Validate
	RouteRepository  repository.RouteRepository
	UserRepository   repository.UserRepository
	CouponRepository repository.CouponRepository
}

func NewPricingUseCase(
	logger log.Log,
	validate *validator.Validate,
	routeRepository repository.RouteRepository,
	userRepository repository.UserRepository,
	couponRepository repository.CouponRepository,
) *PricingUseCase {
	return &PricingUseCase{
		Log:              logger,
		Validate:         validate,
		RouteRepository:  routeRepository,
		UserRepository:   userRepository,
		CouponRepository: couponRepository,
	}
}

// Round2 rounds a monetary amount to 2 decimals. Applied at the display and
// persistence boundary only, never on intermediate terms.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AdultPrice resolves the per-adult price of a route for a user: corporate
// customers pay the base price plus their markup (clamped to [0,100]%), tenants
// with a per-route surcharge pay base plus the flat surcharge, everyone else
// pays base.
func AdultPrice(route *entity.Route, user *entity.User, tenantID string) float64 {
	if user != nil && user.Role == entity.RoleCorporateCustomer && user.MarkupPercent != nil {
		markup := *user.MarkupPercent
		if markup < 0 {
			markup = 0
		}
		if markup > 100 {
			markup = 100
		}
		return Round2(route.BasePrice * (1 + markup/100))
	}
	if surcharge, ok := route.SurchargeFor(tenantID); ok {
		return route.BasePrice + surcharge
	}
	return route.BasePrice
}

// ChildPrice returns the route's child price, or zero when the route has none.
func ChildPrice(route *entity.Route) float64 {
	if route.ChildPrice == nil {
		return 0
	}
	return *route.ChildPrice
}

// Quote is deterministic and side-effect-free: it never touches seat inventory.
func (c *PricingUseCase) Quote(ctx context.Context, request *model.QuoteRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("pricing-usecase", errObj.Message, "Quote", utils.ConvertString(request))
		return result
	}

	route, err := c.RouteRepository.FindByID(ctx, request.TenantID, request.RouteID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("route with id %s not found", request.RouteID)
		result.Error = errObj
		c.Log.Error("pricing-usecase", errObj.Message, "Quote", utils.ConvertString(err))
		return result
	}

	// The requesting user is optional; an unknown id quotes at base price.
	user, err := c.UserRepository.FindByID(ctx, request.TenantID, request.UserID)
	if err != nil && err != repository.ErrNotFound {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to load user: %v", err)
		result.Error = errObj
		c.Log.Error("pricing-usecase", errObj.Message, "Quote", utils.ConvertString(err))
		return result
	}

	breakdown, errObj := c.buildQuote(ctx, route, user, request)
	if errObj != nil {
		result.Error = errObj
		return result
	}

	result.Data = breakdown
	return result
}

func (c *PricingUseCase) buildQuote(ctx context.Context, route *entity.Route, user *entity.User, request *model.QuoteRequest) (*model.QuoteResponse, *httpError.CommonError) {
	adultPrice := AdultPrice(route, user, request.TenantID)
	childPrice := ChildPrice(route)
	subtotal := float64(request.Adults)*adultPrice + float64(request.Children)*childPrice

	var discount float64
	if request.CouponCode != "" {
		coupon, err := c.CouponRepository.FindByCode(ctx, request.TenantID, request.CouponCode)
		if err == repository.ErrNotFound {
			errObj := httpError.NewNotFound()
			errObj.Message = fmt.Sprintf("coupon %s not found", request.CouponCode)
			c.Log.Error("pricing-usecase", errObj.Message, "buildQuote", request.CouponCode)
			return nil, errObj
		}
		if err != nil {
			errObj := httpError.NewInternalServerError()
			errObj.Message = fmt.Sprintf("failed to load coupon: %v", err)
			c.Log.Error("pricing-usecase", errObj.Message, "buildQuote", utils.ConvertString(err))
			return nil, errObj
		}
		discount = coupon.DiscountOn(subtotal)
	}

	return &model.QuoteResponse{
		RouteID:    route.ID,
		AdultPrice: Round2(adultPrice),
		ChildPrice: Round2(childPrice),
		Adults:     request.Adults,
		Children:   request.Children,
		Subtotal:   Round2(subtotal),
		Discount:   Round2(discount),
		Total:      Round2(subtotal - discount),
	}, nil
}

// PriceBooking computes the amount persisted on a new booking.
func (c *PricingUseCase) PriceBooking(ctx context.Context, route *entity.Route, tenantID, customerID string, adults, children int, couponCode string) (float64, *httpError.CommonError) {
	user, err := c.UserRepository.FindByID(ctx, tenantID, customerID)
	if err != nil && err != repository.ErrNotFound {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to load user: %v", err)
		return 0, errObj
	}

	quote, errObj := c.buildQuote(ctx, route, user, &model.QuoteRequest{
		TenantID:   tenantID,
		UserID:     customerID,
		RouteID:    route.ID,
		Adults:     adults,
		Children:   children,
		CouponCode: couponCode,
	})
	if errObj != nil {
		return 0, errObj
	}
	return quote.Total, nil
}
