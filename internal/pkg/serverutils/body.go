package serverutils

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
)

// StrictBodyParser decodes a JSON body into a typed request and rejects
// unknown fields at the boundary. Mutation payloads are allow-listed per
// entity type, so a stray field is a client bug, not something to merge
// into the record.
func StrictBodyParser(ctx *fiber.Ctx, out interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(ctx.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}
