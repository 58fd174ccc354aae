package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// IDRequest - body ของ DELETE ที่ส่งแค่ {id}
type IDRequest struct {
	ID uint `json:"id" validate:"required,gt=0"`
}

// OptionalID รับ id แบบหลวมๆ จาก form: number หรือ string ที่เป็นเลขบวกถือว่ามีค่า
// ค่าอื่น (null, "", 0, -1, "abc") ถือว่าไม่มี
type OptionalID struct {
	// Set = field อยู่ใน body (รวมถึง null)
	Set   bool
	Value uint
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Value = 0

	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		if v > 0 && v < 1<<63 && v == float64(uint(v)) {
			o.Value = uint(v)
		}
	case string:
		if n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 63); err == nil && n > 0 {
			o.Value = uint(n)
		}
	}
	return nil
}

func (o OptionalID) MarshalJSON() ([]byte, error) {
	if !o.Valid() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatUint(uint64(o.Value), 10)), nil
}

// Valid = มี id ที่เป็นเลขบวก
func (o OptionalID) Valid() bool {
	return o.Value > 0
}

// Ptr คืน nil ถ้าไม่มีค่า
func (o OptionalID) Ptr() *uint {
	if !o.Valid() {
		return nil
	}
	v := o.Value
	return &v
}

// normalizeOptional ตัดช่องว่าง; string ว่างกลายเป็น nil
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// nullableField คืนค่าที่จะเขียนลง column: nil แปลว่า NULL
func nullableField(s *string) interface{} {
	if v := normalizeOptional(s); v != nil {
		return *v
	}
	return nil
}
