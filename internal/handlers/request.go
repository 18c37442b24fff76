package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// pathID reads an integer path parameter.
func pathID(c *fiber.Ctx, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	return id, err == nil
}

func invalidID(c *fiber.Ctx, entity, param string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: fmt.Sprintf("Invalid %s ID '%s'", entity, c.Params(param)),
	})
}

// parseFields decodes a JSON object body. An empty body is an empty object.
func parseFields(c *fiber.Ctx) (map[string]any, error) {
	fields := make(map[string]any)
	if len(c.Body()) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(c.Body(), &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = make(map[string]any)
	}
	return fields, nil
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
}

// stripFields drops every key that maps onto the same column as one of names,
// so "userID", "userId" and "user_id" all go.
func stripFields(fields map[string]any, names []string) {
	columns := make(map[string]struct{}, len(names))
	for _, name := range names {
		columns[services.ToSnakeCase(name)] = struct{}{}
	}
	for key := range fields {
		if _, ok := columns[services.ToSnakeCase(key)]; ok {
			delete(fields, key)
		}
	}
}

// isPresent treats null and blank strings as missing. Zero and false count as values.
func isPresent(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	default:
		return true
	}
}

func hasAll(fields map[string]any, required []string) bool {
	for _, name := range required {
		if !isPresent(fields[name]) {
			return false
		}
	}
	return true
}

// requiredMessage renders `"a", "b" and "c" fields are required!`.
func requiredMessage(required []string) string {
	quoted := make([]string, len(required))
	for i, name := range required {
		quoted[i] = strconv.Quote(name)
	}

	switch len(quoted) {
	case 0:
		return ""
	case 1:
		return quoted[0] + " field is required!"
	default:
		return strings.Join(quoted[:len(quoted)-1], ", ") + " and " + quoted[len(quoted)-1] + " fields are required!"
	}
}

// idFromValue accepts the shapes a JSON id can arrive in.
func idFromValue(v any) (int64, bool) {
	switch val := v.(type) {
	case float64:
		if val != math.Trunc(val) || math.Abs(val) >= 1<<53 {
			return 0, false
		}
		return int64(val), true
	case int64:
		return val, true
	case int:
		return int64(val), true
	case json.Number:
		id, err := val.Int64()
		return id, err == nil
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		return id, err == nil
	default:
		return 0, false
	}
}

func parentMissingMessage(parent string, raw any) string {
	return fmt.Sprintf("%s with id '%v' does not exist. Please provide a valid %sID.", parent, raw, parent)
}
