package handlers

import (
	"errors"
	"strconv"
	"strings"

	"products-api/internal/middleware"
	"products-api/internal/models"
	"products-api/internal/repositories"
	"products-api/internal/services"
	"products-api/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Response messages that clients match on.
const (
	MsgProductNotFound       = "Producto no encontrado"
	MsgProductToEditNotFound = "El producto a editar no existe"
	MsgProductToDeleteAbsent = "El producto que desea eliminar no existe"

	MsgInvalidID           = "ID no valido"
	MsgNameRequired        = "el nombre del producto es obligatorio"
	MsgPriceNotNumeric     = "Valor no valido"
	MsgPriceRequired       = "el precio del producto es obligatorio"
	MsgPriceNotPositive    = "Precio Invalido"
	MsgAvailabilityInvalid = "Valor invalido para la disponibilidad"
	MsgNameTooLong         = "el nombre del producto es demasiado largo"
	MsgPriceOutOfRange     = "Precio fuera de rango"
)

// storageMessages are reported when a body passes the rule chain but does not
// fit the products table.
var storageMessages = map[string]string{
	"name":  MsgNameTooLong,
	"price": MsgPriceOutOfRange,
}

var (
	idRules = []validation.Rule{
		validation.Param("id", validation.TagIsInt, MsgInvalidID),
	}
	productBodyRules = []validation.Rule{
		validation.Body("name", validation.TagNotEmpty, MsgNameRequired),
		validation.Body("price", validation.TagIsNumeric, MsgPriceNotNumeric),
		validation.Body("price", validation.TagNotEmpty, MsgPriceRequired),
		validation.Body("price", validation.TagPositive, MsgPriceNotPositive),
	}
	availabilityRules = []validation.Rule{
		validation.Body("availability", validation.TagIsBoolean, MsgAvailabilityInvalid),
	}
)

func rules(sets ...[]validation.Rule) []validation.Rule {
	var out []validation.Rule
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

// ProductResponse wraps a single product.
type ProductResponse struct {
	Data *models.Product `json:"data"`
}

// ProductListResponse wraps a list of products.
type ProductListResponse struct {
	Data []models.Product `json:"data"`
}

// ErrorResponse is returned for unknown products.
type ErrorResponse struct {
	Error string `json:"error" example:"Producto no encontrado"`
}

// ValidationErrorResponse lists every failed validation rule.
type ValidationErrorResponse struct {
	Errors []validation.FieldError `json:"errors"`
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes under /products. Each route
// runs its validation chain, then the input error gate, then the handler.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	gate := middleware.HandleInputErrors()
	byID := validation.NewChain(idRules...).Handler()

	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", byID, gate, h.HandleGetProductByID)
	productRoutes.Post("/",
		validation.NewChain(productBodyRules...).Handler(),
		gate,
		h.HandleCreateProduct,
	)
	productRoutes.Put("/:id",
		validation.NewChain(rules(idRules, productBodyRules, availabilityRules)...).Handler(),
		gate,
		h.HandleUpdateProduct,
	)
	productRoutes.Patch("/:id", byID, gate, h.HandleUpdateAvailability)
	productRoutes.Delete("/:id", byID, gate, h.HandleDeleteProduct)
}

// HandleGetProducts godoc
//
//	@Summary		Get a list of products
//	@Description	Returns every product, highest ID first
//	@Tags			Products
//	@Produce		json
//	@Success		200	{object}	ProductListResponse
//	@Router			/api/products [get]
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(ProductListResponse{Data: products})
}

// HandleGetProductByID godoc
//
//	@Summary		Get a product by ID
//	@Description	Returns a product based on the ID
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		int	true	"The ID of the product to retrieve"
//	@Success		200	{object}	ProductResponse
//	@Failure		400	{object}	ValidationErrorResponse	"Bad Request - Invalid ID"
//	@Failure		404	{object}	ErrorResponse			"Product not found"
//	@Router			/api/products/{id} [get]
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return notFound(c, MsgProductNotFound)
	}

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return notFound(c, MsgProductNotFound)
		}
		return err
	}
	return c.JSON(ProductResponse{Data: product})
}

// HandleCreateProduct godoc
//
//	@Summary		Create a new product
//	@Description	Creates a new record in the database. Availability defaults to true.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		ProductRequest	true	"Product to create"
//	@Success		201		{object}	ProductResponse
//	@Failure		400		{object}	ValidationErrorResponse	"Bad Request - Invalid input"
//	@Router			/api/products [post]
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	req, fieldErrs, err := decodeProduct(c)
	if err != nil {
		return err
	}
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{Errors: fieldErrs})
	}

	input := req.input()
	if req.Availability == nil {
		input.Availability = true
	}

	product, err := h.service.CreateProduct(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(ProductResponse{Data: product})
}

// HandleUpdateProduct godoc
//
//	@Summary		Update a product by ID
//	@Description	Overwrites name, price and availability and returns the updated product
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int				true	"The ID of the product to update"
//	@Param			product	body		ProductRequest	true	"New product values"
//	@Success		200		{object}	ProductResponse
//	@Failure		400		{object}	ValidationErrorResponse	"Bad Request - Invalid ID or Invalid input data"
//	@Failure		404		{object}	ErrorResponse			"Product not found"
//	@Router			/api/products/{id} [put]
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return notFound(c, MsgProductToEditNotFound)
	}
	req, fieldErrs, err := decodeProduct(c)
	if err != nil {
		return err
	}
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{Errors: fieldErrs})
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, req.input())
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return notFound(c, MsgProductToEditNotFound)
		}
		return err
	}
	return c.JSON(ProductResponse{Data: product})
}

// HandleUpdateAvailability godoc
//
//	@Summary		Toggle product availability
//	@Description	Flips the stored availability of the product. The request body is ignored.
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		int	true	"The ID of the product to update"
//	@Success		200	{object}	ProductResponse
//	@Failure		400	{object}	ValidationErrorResponse	"Bad Request - Invalid ID"
//	@Failure		404	{object}	ErrorResponse			"Product not found"
//	@Router			/api/products/{id} [patch]
func (h *ProductHandler) HandleUpdateAvailability(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return notFound(c, MsgProductToEditNotFound)
	}

	product, err := h.service.ToggleAvailability(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return notFound(c, MsgProductToEditNotFound)
		}
		return err
	}
	return c.JSON(ProductResponse{Data: product})
}

// HandleDeleteProduct godoc
//
//	@Summary		Delete a product by ID
//	@Description	Removes a product from the database and returns it
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		int	true	"The ID of the product to delete"
//	@Success		200	{object}	ProductResponse
//	@Failure		400	{object}	ValidationErrorResponse	"Bad Request - Invalid ID"
//	@Failure		404	{object}	ErrorResponse			"Product not found"
//	@Router			/api/products/{id} [delete]
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return notFound(c, MsgProductToDeleteAbsent)
	}

	product, err := h.service.DeleteProduct(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return notFound(c, MsgProductToDeleteAbsent)
		}
		return err
	}
	return c.JSON(ProductResponse{Data: product})
}

// ProductRequest is the typed product body. Its limits match the products
// table: name is varchar(255) and price is decimal(10,2).
type ProductRequest struct {
	Name         string  `json:"name" validate:"max=255" example:"Teclado"`
	Price        float64 `json:"price" validate:"gte=0.01,lte=99999999.99" example:"300"`
	Availability *bool   `json:"availability,omitempty" example:"true"`
}

func (r *ProductRequest) input() services.ProductInput {
	input := services.ProductInput{Name: r.Name, Price: r.Price}
	if r.Availability != nil {
		input.Availability = *r.Availability
	}
	return input
}

// decodeProduct builds a ProductRequest from a body that already passed the
// rule chain and checks it against the storage limits.
func decodeProduct(c *fiber.Ctx) (*ProductRequest, []validation.FieldError, error) {
	body, err := validation.ParsedBody(c)
	if err != nil {
		return nil, nil, err
	}

	price, _ := validation.NumberOf(body["price"])
	req := &ProductRequest{
		Name:  validation.StringOf(body["name"]),
		Price: price,
	}
	if availability, ok := validation.BoolOf(body["availability"]); ok {
		req.Availability = &availability
	}

	fieldErrs, err := validation.Struct(req, validation.LocationBody, storageMessages)
	if err != nil {
		return nil, nil, err
	}
	return req, fieldErrs, nil
}

// productID parses the already validated id parameter. Integers that cannot
// name a stored product, such as 0 or negatives, report false.
func productID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimPrefix(validation.ParamValue(c, "id"), "+"), 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: msg})
}
