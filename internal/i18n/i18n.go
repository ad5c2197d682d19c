// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package i18n localizes validation messages for admin callers. English is
// the default; Korean is the editorial team's language.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rubms01/ai-restaurant/internal/validation"
)

var supported = []language.Tag{language.English, language.Korean}

var matcher = language.NewMatcher(supported)

// Message keys double as the English text.
const (
	msgRequired = "%s is required"
	msgMax      = "%s must be at most %s characters"
	msgMin      = "%s must be at least %s characters"
	msgGte      = "%s must be greater than or equal to %s"
	msgLte      = "%s must be less than or equal to %s"
	msgE164     = "%s must be a phone number in E.164 format"
	msgUnique   = "%s already exists"
	msgCheck    = "%s is out of range"
	msgExists   = "%s refers to a record that does not exist"
	msgInvalid  = "%s is invalid"

	msgMultipleRepresentative = "only one representative image is allowed per restaurant"
	msgValidationFailed       = "please correct the errors below"
)

var korean = map[string]string{
	msgRequired: "%s 항목은 필수입니다.",
	msgMax:      "%s 항목은 최대 %s자까지 입력할 수 있습니다.",
	msgMin:      "%s 항목은 최소 %s자 이상이어야 합니다.",
	msgGte:      "%s 값은 %s 이상이어야 합니다.",
	msgLte:      "%s 값은 %s 이하여야 합니다.",
	msgE164:     "%s 항목은 E.164 형식의 전화번호여야 합니다.",
	msgUnique:   "이미 존재하는 %s 입니다.",
	msgCheck:    "%s 값이 허용 범위를 벗어났습니다.",
	msgExists:   "%s 항목이 존재하지 않는 레코드를 참조합니다.",
	msgInvalid:  "%s 값이 올바르지 않습니다.",

	msgMultipleRepresentative: "대표 이미지는 하나만 설정 할 수 있습니다.",
	msgValidationFailed:       "아래 오류를 수정해 주세요.",
}

// invariantKeys maps InvariantViolation codes to message keys.
var invariantKeys = map[string]string{
	validation.ErrMultipleRepresentativeImages.Code: msgMultipleRepresentative,
}

func init() {
	for key, ko := range korean {
		_ = message.SetString(language.English, key, key)
		_ = message.SetString(language.Korean, key, ko)
	}
}

// Match picks the best supported language for an Accept-Language header.
// An empty or unparsable header yields English.
func Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

// Localizer renders validation failures in one language.
type Localizer struct {
	p *message.Printer
}

// New returns a Localizer for tag.
func New(tag language.Tag) *Localizer {
	return &Localizer{p: message.NewPrinter(tag)}
}

// Field renders a single field failure.
func (l *Localizer) Field(fe validation.FieldError) string {
	switch fe.Rule {
	case "required":
		return l.p.Sprintf(msgRequired, fe.Field)
	case "max":
		return l.p.Sprintf(msgMax, fe.Field, fe.Param)
	case "min":
		return l.p.Sprintf(msgMin, fe.Field, fe.Param)
	case "gte":
		return l.p.Sprintf(msgGte, fe.Field, fe.Param)
	case "lte":
		return l.p.Sprintf(msgLte, fe.Field, fe.Param)
	case "e164":
		return l.p.Sprintf(msgE164, fe.Field)
	case "unique":
		return l.p.Sprintf(msgUnique, fe.Field)
	case "check":
		return l.p.Sprintf(msgCheck, fe.Field)
	case "exists":
		return l.p.Sprintf(msgExists, fe.Field)
	default:
		return l.p.Sprintf(msgInvalid, fe.Field)
	}
}

// Invariant renders an invariant violation, falling back to its English
// message for unknown codes.
func (l *Localizer) Invariant(iv *validation.InvariantViolation) string {
	key, ok := invariantKeys[iv.Code]
	if !ok {
		return iv.Message
	}
	return l.p.Sprintf(key)
}

// Summary is the headline shown above a list of field failures.
func (l *Localizer) Summary() string {
	return l.p.Sprintf(msgValidationFailed)
}
