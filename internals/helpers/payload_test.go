package helper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payloadOf(t *testing.T, s string) Payload {
	t.Helper()
	p := Payload{}
	require.NoError(t, json.Unmarshal([]byte(s), &p))
	return p
}

func TestRequiredErrors(t *testing.T) {
	p := payloadOf(t, `{"name":"   ","code":null,"title":"ok"}`)

	errs := RequiredErrors(p, []string{"name", "code", "title", "missing"}, false)
	assert.Equal(t, FieldErrors{
		"name":    {MsgRequired},
		"code":    {MsgRequired},
		"missing": {MsgRequired},
	}, errs)

	// blank and omitted fail the same way; partial skips only the omitted one
	partial := RequiredErrors(p, []string{"name", "missing"}, true)
	assert.Equal(t, FieldErrors{"name": {MsgRequired}}, partial)
}

type sample struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Count    int     `json:"count"`
	Active   bool    `json:"is_active"`
	Ref      *uint   `json:"ref"`
	Note     *string `json:"note"`
	Internal string  `json:"-"`
}

func TestApplyPayload(t *testing.T) {
	s := sample{ID: 9, Name: "old", Count: 1}
	errs := ApplyPayload(&s, payloadOf(t, `{"id":1,"name":"new","count":"12","is_active":"true","ref":"4","Internal":"x"}`))

	require.True(t, errs.Empty(), errs)
	assert.Equal(t, uint(9), s.ID)
	assert.Equal(t, "new", s.Name)
	assert.Equal(t, 12, s.Count)
	assert.True(t, s.Active)
	require.NotNil(t, s.Ref)
	assert.Equal(t, uint(4), *s.Ref)
	assert.Empty(t, s.Internal)
}

func TestApplyPayloadTypeErrors(t *testing.T) {
	var s sample
	errs := ApplyPayload(&s, payloadOf(t, `{"count":"twelve","is_active":"maybe","name":{"a":1}}`))

	assert.Equal(t, FieldErrors{
		"count":     {MsgInvalidInteger},
		"is_active": {MsgInvalidBoolean},
		"name":      {MsgInvalidString},
	}, errs)
}

func TestApplyPayloadNullResets(t *testing.T) {
	ref := uint(3)
	note := "x"
	s := sample{Ref: &ref, Note: &note, Count: 5}

	errs := ApplyPayload(&s, payloadOf(t, `{"ref":null,"note":null,"count":""}`))
	require.True(t, errs.Empty())
	assert.Nil(t, s.Ref)
	assert.Nil(t, s.Note)
	assert.Zero(t, s.Count)
}

func TestPayloadAccessors(t *testing.T) {
	p := payloadOf(t, `{"s":"text","n":12,"z":null}`)

	assert.True(t, p.Has("z"))
	assert.True(t, p.IsNull("z"))
	assert.False(t, p.IsNull("absent"))
	assert.Equal(t, "text", p.Text("s"))
	assert.Equal(t, "12", p.Text("n"))
	assert.Equal(t, "", p.Text("z"))
	assert.False(t, p.Blank("n"))

	p.Set("list", []int{1, 2})
	assert.JSONEq(t, `[1,2]`, string(p["list"]))
}

func TestValidateStructMessages(t *testing.T) {
	type choice struct {
		Kind  string `json:"kind" validate:"oneof=Boys Girls"`
		Email string `json:"email" validate:"omitempty,email"`
		Beds  int    `json:"beds" validate:"gte=0"`
	}
	errs := ValidateStruct(choice{Kind: "Mixed", Email: "nope", Beds: -1})

	assert.Equal(t, []string{`"Mixed" is not a valid choice.`}, errs["kind"])
	assert.Equal(t, []string{"Enter a valid email address."}, errs["email"])
	assert.Equal(t, []string{"Ensure this value is greater than or equal to 0."}, errs["beds"])
}
