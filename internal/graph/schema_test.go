package graph

import (
	"context"
	"errors"
	"testing"
	"time"

	"graphql-crm/internal/model"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/relay"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	customers *MockCustomerService
	products  *MockProductService
	orders    *MockOrderService
	schema    graphql.Schema
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		customers: new(MockCustomerService),
		products:  new(MockProductService),
		orders:    new(MockOrderService),
	}
	resolver := NewResolver(f.customers, f.products, f.orders, Options{DefaultPageSize: 2, MaxPageSize: 3}, zerolog.Nop())

	schema, err := NewSchema(resolver)
	require.NoError(t, err)
	f.schema = schema

	return f
}

func (f *fixture) do(t *testing.T, query string, vars map[string]interface{}) *graphql.Result {
	t.Helper()
	return graphql.Do(graphql.Params{
		Schema:         f.schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        context.Background(),
	})
}

// dig walks nested response maps by key.
func dig(t *testing.T, data interface{}, path ...string) interface{} {
	t.Helper()
	for _, key := range path {
		m, ok := data.(map[string]interface{})
		require.True(t, ok, "expected object at %q, got %T", key, data)
		data = m[key]
	}
	return data
}

func TestHello(t *testing.T) {
	f := newFixture(t)

	res := f.do(t, `{ hello }`, nil)

	require.Empty(t, res.Errors)
	assert.Equal(t, "Hello, GraphQL!", dig(t, res.Data, "hello"))
}

const createCustomerMutation = `
	mutation Create($input: CustomerInput!) {
		createCustomer(input: $input) {
			customer { id name email phone }
			message
			success
			errors
		}
	}
`

func TestCreateCustomer(t *testing.T) {
	id := uuid.New()
	phone := "+1234567890"

	tests := []struct {
		name        string
		returnValue *model.Customer
		returnErr   error
		check       func(t *testing.T, res *graphql.Result)
	}{
		{
			name:        "Success",
			returnValue: &model.Customer{ID: id, Name: "Alice", Email: "alice@example.com", Phone: &phone, CreatedAt: time.Now()},
			check: func(t *testing.T, res *graphql.Result) {
				require.Empty(t, res.Errors)
				assert.Equal(t, true, dig(t, res.Data, "createCustomer", "success"))
				assert.Equal(t, "Customer created successfully!", dig(t, res.Data, "createCustomer", "message"))
				assert.Equal(t, []interface{}{}, dig(t, res.Data, "createCustomer", "errors"))
				assert.Equal(t, id.String(), dig(t, res.Data, "createCustomer", "customer", "id"))
				assert.Equal(t, "alice@example.com", dig(t, res.Data, "createCustomer", "customer", "email"))
				assert.Equal(t, phone, dig(t, res.Data, "createCustomer", "customer", "phone"))
			},
		},
		{
			name:      "Validation failure is data",
			returnErr: model.ValidationErrors{model.ErrInvalidEmail, model.ErrInvalidPhone},
			check: func(t *testing.T, res *graphql.Result) {
				require.Empty(t, res.Errors)
				assert.Equal(t, false, dig(t, res.Data, "createCustomer", "success"))
				assert.Equal(t, "Failed to create customer", dig(t, res.Data, "createCustomer", "message"))
				assert.Nil(t, dig(t, res.Data, "createCustomer", "customer"))
				assert.Equal(t,
					[]interface{}{"Invalid email format", "Invalid phone number format"},
					dig(t, res.Data, "createCustomer", "errors"))
			},
		},
		{
			name:      "Duplicate email is data",
			returnErr: model.ErrEmailExists,
			check: func(t *testing.T, res *graphql.Result) {
				require.Empty(t, res.Errors)
				assert.Equal(t, []interface{}{"Email already exists"}, dig(t, res.Data, "createCustomer", "errors"))
			},
		},
		{
			name:      "Infrastructure failure is a GraphQL error",
			returnErr: errors.New("failed to begin transaction: connection refused"),
			check: func(t *testing.T, res *graphql.Result) {
				require.Len(t, res.Errors, 1)
				assert.Equal(t, "internal server error", res.Errors[0].Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.customers.On("CreateCustomer", mock.Anything, model.CustomerInput{
				Name:  "Alice",
				Email: "alice@example.com",
				Phone: &phone,
			}).Return(tt.returnValue, tt.returnErr)

			res := f.do(t, createCustomerMutation, map[string]interface{}{
				"input": map[string]interface{}{"name": "Alice", "email": "alice@example.com", "phone": phone},
			})

			tt.check(t, res)
			f.customers.AssertExpectations(t)
		})
	}
}

func TestBulkCreateCustomers(t *testing.T) {
	f := newFixture(t)

	inputs := []model.CustomerInput{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Bob", Email: "bad"},
	}
	f.customers.On("BulkCreateCustomers", mock.Anything, inputs).Return(&model.BulkCreateResult{
		Customers:    []model.Customer{{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}},
		Errors:       []string{"Customer 2 (bad): Invalid email format"},
		SuccessCount: 1,
		ErrorCount:   1,
	}, nil)

	res := f.do(t, `
		mutation {
			bulkCreateCustomers(input: [
				{name: "Alice", email: "alice@example.com"},
				{name: "Bob", email: "bad"}
			]) {
				customers { name }
				errors
				successCount
				errorCount
			}
		}
	`, nil)

	require.Empty(t, res.Errors)
	assert.Equal(t, 1, dig(t, res.Data, "bulkCreateCustomers", "successCount"))
	assert.Equal(t, 1, dig(t, res.Data, "bulkCreateCustomers", "errorCount"))
	assert.Equal(t, []interface{}{"Customer 2 (bad): Invalid email format"}, dig(t, res.Data, "bulkCreateCustomers", "errors"))
	customers := dig(t, res.Data, "bulkCreateCustomers", "customers").([]interface{})
	require.Len(t, customers, 1)
	assert.Equal(t, "Alice", dig(t, customers[0], "name"))
}

func TestCreateProduct(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	f.products.On("CreateProduct", mock.Anything, mock.MatchedBy(func(in model.ProductInput) bool {
		return in.Name == "Laptop" && in.Price.Equal(decimal.RequireFromString("999.99")) && in.Stock == 0
	})).Return(&model.Product{ID: id, Name: "Laptop", Price: decimal.RequireFromString("999.99")}, nil)

	res := f.do(t, `
		mutation {
			createProduct(input: {name: "Laptop", price: "999.99"}) {
				product { id name price stock }
				message
				success
			}
		}
	`, nil)

	require.Empty(t, res.Errors)
	assert.Equal(t, "Product created successfully!", dig(t, res.Data, "createProduct", "message"))
	assert.Equal(t, "999.99", dig(t, res.Data, "createProduct", "product", "price"))
	assert.Equal(t, 0, dig(t, res.Data, "createProduct", "product", "stock"))
	f.products.AssertExpectations(t)
}

func TestCreateProduct_InvalidPrice(t *testing.T) {
	f := newFixture(t)
	f.products.On("CreateProduct", mock.Anything, mock.Anything).
		Return(nil, model.ValidationErrors{model.ErrInvalidPrice})

	res := f.do(t, `
		mutation {
			createProduct(input: {name: "Freebie", price: 0, stock: 5}) { product { id } message success errors }
		}
	`, nil)

	require.Empty(t, res.Errors)
	assert.Equal(t, "Failed to create product", dig(t, res.Data, "createProduct", "message"))
	assert.Equal(t, []interface{}{"Price must be positive"}, dig(t, res.Data, "createProduct", "errors"))
}

func TestCreateOrder(t *testing.T) {
	customerID := uuid.New()
	productID := uuid.New()
	orderID := uuid.New()
	orderDate := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)

		f.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(in model.OrderInput) bool {
			return in.CustomerID == customerID.String() &&
				len(in.ProductIDs) == 1 && in.ProductIDs[0] == productID.String() &&
				in.OrderDate != nil && in.OrderDate.Equal(orderDate)
		})).Return(&model.Order{
			ID:          orderID,
			CustomerID:  customerID,
			TotalAmount: decimal.RequireFromString("1349.99"),
			OrderDate:   orderDate,
		}, nil)
		f.customers.On("GetByID", mock.Anything, customerID.String()).
			Return(&model.Customer{ID: customerID, Name: "Alice", Email: "alice@example.com"}, nil)
		f.products.On("ListByOrder", mock.Anything, orderID).
			Return([]model.Product{{ID: productID, Name: "Laptop", Price: decimal.RequireFromString("1349.99")}}, nil)

		res := f.do(t, `
			mutation Create($input: OrderInput!) {
				createOrder(input: $input) {
					order { id totalAmount orderDate customer { name } products { name } }
					message
					success
				}
			}
		`, map[string]interface{}{
			"input": map[string]interface{}{
				"customerId": customerID.String(),
				"productIds": []interface{}{productID.String()},
				"orderDate":  orderDate.Format(time.RFC3339),
			},
		})

		require.Empty(t, res.Errors)
		assert.Equal(t, "Order created successfully!", dig(t, res.Data, "createOrder", "message"))
		assert.Equal(t, "1349.99", dig(t, res.Data, "createOrder", "order", "totalAmount"))
		assert.Equal(t, "Alice", dig(t, res.Data, "createOrder", "order", "customer", "name"))
		products := dig(t, res.Data, "createOrder", "order", "products").([]interface{})
		require.Len(t, products, 1)
		assert.Equal(t, "Laptop", dig(t, products[0], "name"))
	})

	t.Run("Customer not found", func(t *testing.T) {
		f := newFixture(t)
		f.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, model.ErrCustomerNotFound)

		res := f.do(t, `
			mutation {
				createOrder(input: {customerId: "missing", productIds: []}) { order { id } message success errors }
			}
		`, nil)

		require.Empty(t, res.Errors)
		assert.Equal(t, false, dig(t, res.Data, "createOrder", "success"))
		assert.Equal(t, "Failed to create order", dig(t, res.Data, "createOrder", "message"))
		assert.Equal(t, []interface{}{"Customer not found"}, dig(t, res.Data, "createOrder", "errors"))
		assert.Nil(t, dig(t, res.Data, "createOrder", "order"))
	})
}

func productsN(n int) []model.Product {
	products := make([]model.Product, n)
	for i := range products {
		products[i] = model.Product{ID: uuid.New(), Name: string(rune('A' + i)), Price: decimal.NewFromInt(int64(i + 1))}
	}
	return products
}

func TestAllProducts_Pagination(t *testing.T) {
	lowStock := true
	filter := model.ProductFilter{LowStock: &lowStock}
	all := productsN(5)

	tests := []struct {
		name        string
		args        string
		page        model.PageRequest
		names       []interface{}
		hasNext     bool
		hasPrevious bool
		firstCursor string
	}{
		{
			name:        "Default page size",
			args:        ``,
			page:        model.PageRequest{Offset: 0, Limit: 2},
			names:       []interface{}{"A", "B"},
			hasNext:     true,
			firstCursor: string(relay.OffsetToCursor(0)),
		},
		{
			name:        "First is capped",
			args:        `first: 50`,
			page:        model.PageRequest{Offset: 0, Limit: 3},
			names:       []interface{}{"A", "B", "C"},
			hasNext:     true,
			firstCursor: string(relay.OffsetToCursor(0)),
		},
		{
			name:        "After cursor",
			args:        `first: 2, after: "` + string(relay.OffsetToCursor(2)) + `"`,
			page:        model.PageRequest{Offset: 3, Limit: 2},
			names:       []interface{}{"D", "E"},
			hasNext:     false,
			firstCursor: string(relay.OffsetToCursor(3)),
		},
		{
			name:        "Last",
			args:        `last: 2`,
			page:        model.PageRequest{Offset: 3, Limit: 2},
			names:       []interface{}{"D", "E"},
			hasPrevious: true,
			firstCursor: string(relay.OffsetToCursor(3)),
		},
		{
			name:        "Ordered descending",
			args:        `first: 1, orderBy: ["-price"]`,
			page:        model.PageRequest{Offset: 0, Limit: 1, Sort: []model.SortField{{Field: "price", Descending: true}}},
			names:       []interface{}{"A"},
			hasNext:     true,
			firstCursor: string(relay.OffsetToCursor(0)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.products.On("Count", mock.Anything, filter).Return(len(all), nil)
			f.products.On("List", mock.Anything, filter, tt.page).
				Return(all[tt.page.Offset:min(tt.page.Offset+tt.page.Limit, len(all))], nil)

			args := `filter: {lowStock: true}`
			if tt.args != "" {
				args += ", " + tt.args
			}
			res := f.do(t, `{
				allProducts(`+args+`) {
					totalCount
					edges { cursor node { name } }
					pageInfo { hasNextPage hasPreviousPage startCursor }
				}
			}`, nil)

			require.Empty(t, res.Errors)
			assert.Equal(t, 5, dig(t, res.Data, "allProducts", "totalCount"))
			assert.Equal(t, tt.hasNext, dig(t, res.Data, "allProducts", "pageInfo", "hasNextPage"))
			assert.Equal(t, tt.hasPrevious, dig(t, res.Data, "allProducts", "pageInfo", "hasPreviousPage"))
			assert.Equal(t, tt.firstCursor, dig(t, res.Data, "allProducts", "pageInfo", "startCursor"))

			edges := dig(t, res.Data, "allProducts", "edges").([]interface{})
			names := make([]interface{}, len(edges))
			for i, e := range edges {
				names[i] = dig(t, e, "node", "name")
			}
			assert.Equal(t, tt.names, names)
			f.products.AssertExpectations(t)
		})
	}
}

func TestAllCustomers_EmptyWindowSkipsQuery(t *testing.T) {
	f := newFixture(t)
	f.customers.On("Count", mock.Anything, model.CustomerFilter{}).Return(0, nil)

	res := f.do(t, `{ allCustomers { totalCount edges { node { id } } } }`, nil)

	require.Empty(t, res.Errors)
	assert.Equal(t, 0, dig(t, res.Data, "allCustomers", "totalCount"))
	assert.Equal(t, []interface{}{}, dig(t, res.Data, "allCustomers", "edges"))
	f.customers.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestAllCustomers_Errors(t *testing.T) {
	t.Run("Invalid cursor", func(t *testing.T) {
		f := newFixture(t)
		f.customers.On("Count", mock.Anything, model.CustomerFilter{}).Return(3, nil)

		res := f.do(t, `{ allCustomers(after: "garbage") { totalCount } }`, nil)

		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0].Message, "invalid cursor")
	})

	t.Run("Unknown ordering field", func(t *testing.T) {
		f := newFixture(t)
		f.customers.On("Count", mock.Anything, model.CustomerFilter{}).Return(3, nil)
		f.customers.On("List", mock.Anything, model.CustomerFilter{}, mock.Anything).
			Return(nil, model.NewDomainError(model.ErrCodeValidation, `Cannot order by "password"`))

		res := f.do(t, `{ allCustomers(orderBy: ["password"]) { totalCount } }`, nil)

		require.Len(t, res.Errors, 1)
		assert.Equal(t, `Cannot order by "password"`, res.Errors[0].Message)
	})

	t.Run("Count failure", func(t *testing.T) {
		f := newFixture(t)
		f.customers.On("Count", mock.Anything, model.CustomerFilter{}).Return(0, errors.New("pool closed"))

		res := f.do(t, `{ allCustomers { totalCount } }`, nil)

		require.Len(t, res.Errors, 1)
		assert.Equal(t, "internal server error", res.Errors[0].Message)
	})
}

func TestAllOrders_Filter(t *testing.T) {
	f := newFixture(t)
	minTotal := decimal.RequireFromString("100.50")

	f.orders.On("Count", mock.Anything, mock.MatchedBy(func(got model.OrderFilter) bool {
		return got.CustomerName != nil && *got.CustomerName == "alice" &&
			got.TotalAmountGte != nil && got.TotalAmountGte.Equal(minTotal) &&
			got.ProductName == nil
	})).Return(0, nil)

	res := f.do(t, `{ allOrders(filter: {customerName: "alice", totalAmountGte: "100.50"}) { totalCount } }`, nil)

	require.Empty(t, res.Errors)
	assert.Equal(t, 0, dig(t, res.Data, "allOrders", "totalCount"))
	f.orders.AssertExpectations(t)
}

func TestSingleLookups(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	f.customers.On("GetByID", mock.Anything, id.String()).Return(&model.Customer{ID: id, Name: "Alice"}, nil)
	f.customers.On("GetByID", mock.Anything, "nope").Return(nil, nil)
	f.orders.On("ListByCustomer", mock.Anything, id).Return([]model.Order{{ID: uuid.New(), CustomerID: id}}, nil)

	res := f.do(t, `query($id: ID!) { customer(id: $id) { name orders { id } } missing: customer(id: "nope") { name } }`,
		map[string]interface{}{"id": id.String()})

	require.Empty(t, res.Errors)
	assert.Equal(t, "Alice", dig(t, res.Data, "customer", "name"))
	assert.Len(t, dig(t, res.Data, "customer", "orders"), 1)
	assert.Nil(t, dig(t, res.Data, "missing"))
}
