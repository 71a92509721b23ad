package main

import (
	"net/url"
	"strings"

	"github.com/agonglab/ssgs-web/internal/catalog"
	"github.com/agonglab/ssgs-web/internal/wizard"
)

// ideaForm is the raw form state, kept verbatim for re-rendering on
// validation failure.
type ideaForm struct {
	CategoryCode string
	Gu           string
	Dong         string
	ZoneCode     string
	Menu         string
	Concept      string
	Keywords     string
}

func ideaFormFromPost(form url.Values) ideaForm {
	get := func(key string) string { return strings.TrimSpace(form.Get(key)) }
	return ideaForm{
		CategoryCode: get("category_code"),
		Gu:           get("gu"),
		Dong:         get("dong"),
		ZoneCode:     get("zone_code"),
		Menu:         get("menu"),
		Concept:      get("concept"),
		Keywords:     get("keywords"),
	}
}

// validate checks every field and resolves codes against the catalog. The
// returned map is keyed by field name for inline display.
func (f ideaForm) validate(c *catalog.Catalog) (wizard.Idea, map[string]string) {
	errs := make(map[string]string)

	category, ok := c.CategoryByCode(f.CategoryCode)
	if f.CategoryCode == "" || !ok {
		errs["category"] = "업종을 선택해주세요"
	}
	if f.Gu == "" {
		errs["gu"] = "구를 선택해주세요"
	}
	if f.Dong == "" {
		errs["dong"] = "동을 선택해주세요"
	}
	var zone catalog.Zone
	if f.ZoneCode == "" {
		errs["zone"] = "상권을 선택해주세요"
	} else if f.Gu != "" && f.Dong != "" {
		// A zone code from a previously selected dong is stale.
		if zone, ok = c.ZoneByCode(f.Gu, f.Dong, f.ZoneCode); !ok {
			errs["zone"] = "상권을 선택해주세요"
		}
	}
	if f.Menu == "" {
		errs["menu"] = "메뉴를 입력해주세요"
	}
	if f.Concept == "" {
		errs["concept"] = "콘셉트를 입력해주세요"
	}
	if f.Keywords == "" {
		errs["keywords"] = "키워드를 입력해주세요"
	}
	if len(errs) > 0 {
		return wizard.Idea{}, errs
	}

	return wizard.Idea{
		Category:     category.Name,
		CategoryCode: category.Code,
		Gu:           f.Gu,
		Dong:         f.Dong,
		Zone:         zone.Name,
		ZoneCode:     zone.Code,
		Menu:         f.Menu,
		Concept:      f.Concept,
		Keywords:     f.Keywords,
	}, nil
}

// Option is one <option> entry.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// IdeaView backs the idea form page.
type IdeaView struct {
	Form       ideaForm
	Errors     map[string]string
	Categories []Option
	Gus        []Option
	Dongs      []Option
	Zones      []Option
}

func buildIdeaView(c *catalog.Catalog, form ideaForm, errs map[string]string) *IdeaView {
	v := &IdeaView{Form: form, Errors: errs}
	for _, cat := range c.Categories() {
		v.Categories = append(v.Categories, Option{Value: cat.Code, Label: cat.Name, Selected: cat.Code == form.CategoryCode})
	}
	for _, gu := range c.GuNames() {
		v.Gus = append(v.Gus, Option{Value: gu, Label: gu, Selected: gu == form.Gu})
	}
	v.Dongs = buildDongOptions(c, form.Gu).Options
	for i, o := range v.Dongs {
		v.Dongs[i].Selected = o.Value == form.Dong
	}
	v.Zones = buildZoneOptions(c, form.Gu, form.Dong).Options
	for i, o := range v.Zones {
		v.Zones[i].Selected = o.Value == form.ZoneCode
	}
	return v
}

// OptionsView backs the dependent-select fragments.
type OptionsView struct {
	Placeholder string
	Options     []Option
}

func buildDongOptions(c *catalog.Catalog, gu string) OptionsView {
	v := OptionsView{Placeholder: "동 선택"}
	for _, dong := range c.DongNames(gu) {
		v.Options = append(v.Options, Option{Value: dong, Label: dong})
	}
	return v
}

func buildZoneOptions(c *catalog.Catalog, gu, dong string) OptionsView {
	v := OptionsView{Placeholder: "상권 선택"}
	for _, z := range c.Zones(gu, dong) {
		v.Options = append(v.Options, Option{Value: z.Code, Label: z.Name})
	}
	return v
}
