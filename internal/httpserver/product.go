package httpserver

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront/internal/events"
	"storefront/internal/logging"
	"storefront/internal/service"
	"storefront/internal/store"
	"storefront/internal/transport"
	"storefront/internal/upload"
)

type ProductHTTP struct {
	Svc      *service.ProductService
	Producer *events.Producer
}

func (h *ProductHTTP) publish(c echo.Context, event map[string]any) {
	ctx := c.Request().Context()
	if err := h.Producer.PublishEvent(ctx, fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "error", err)
	}
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	items, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("get_products_error", "status", 500, "reason", "cannot list products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	product, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Warn("get_product_failed", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_failed", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	name := c.FormValue("name")
	description := c.FormValue("description")
	priceStr := c.FormValue("price")
	quantityStr := c.FormValue("quantity")
	if name == "" || description == "" || priceStr == "" || quantityStr == "" {
		l.Warn("product_create_error", "status", 400, "reason", "missing required fields")
		return echo.NewHTTPError(http.StatusBadRequest, "missing required fields")
	}

	price, err := strconv.ParseInt(priceStr, 10, 64)
	if err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "price is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "price is not an integer")
	}
	quantity, err := strconv.ParseInt(quantityStr, 10, 64)
	if err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "quantity is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "quantity is not an integer")
	}

	var image *multipart.FileHeader
	if fh, err := c.FormFile("image"); err == nil {
		image = fh
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		l.Warn("product_create_error", "status", 400, "reason", "invalid image field", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid image field")
	}

	prod, err := h.Svc.Create(ctx, service.ProductInput{
		Name:        name,
		Description: description,
		Price:       price,
		Quantity:    quantity,
	}, image)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation),
			errors.Is(err, upload.ErrNotImage),
			errors.Is(err, upload.ErrTooLarge):
			l.Warn("product_create_error", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("product_create_error", "status", 500, "reason", "cannot create product", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot create product")
		}
	}

	h.publish(c, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	l.Info("create_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("product_update_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_update_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Description == "" || req.Price == nil || req.Quantity == nil {
		l.Warn("product_update_error", "status", 400, "reason", "missing required fields")
		return echo.NewHTTPError(http.StatusBadRequest, "missing required fields")
	}

	prod, err := h.Svc.Update(ctx, id, service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Quantity:    *req.Quantity,
		ImagePath:   req.ImagePath,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("product_update_error", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrNotFound):
			l.Warn("product_update_error", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		default:
			l.Error("product_update_error", "status", 500, "reason", "cannot update product", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
		}
	}

	h.publish(c, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	l.Info("update_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("product_delete_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Warn("product_delete_error", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("product_delete_error", "status", 500, "reason", "cannot delete product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	h.publish(c, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	l.Info("delete_product_success", "product_id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted"})
}

func (h *ProductHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_quantity")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("quantity_update_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.QuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("quantity_update_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity == nil {
		l.Warn("quantity_update_error", "status", 400, "reason", "quantity is required")
		return echo.NewHTTPError(http.StatusBadRequest, "quantity is required")
	}

	prod, err := h.Svc.AdjustQuantity(ctx, id, *req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("quantity_update_error", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrNotFound):
			l.Warn("quantity_update_error", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		default:
			l.Error("quantity_update_error", "status", 500, "reason", "cannot update quantity", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update quantity")
		}
	}

	l.Info("update_quantity_success", "product_id", id)
	return c.JSON(http.StatusOK, prod)
}
