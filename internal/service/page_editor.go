package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kondzio-p/ftbd-blt/internal/db"
)

var (
	ErrUnknownField    = errors.New("unknown page field")
	ErrUnknownArray    = errors.New("unknown page array")
	ErrIndexOutOfRange = errors.New("array index out of range")
	ErrInvalidValue    = errors.New("invalid field value")
	ErrUnknownEditOp   = errors.New("unknown edit operation")
)

// Field names a top-level PageRecord field. The id is not editable.
type Field string

const (
	FieldName           Field = "name"
	FieldSlug           Field = "slug"
	FieldNavigation     Field = "navigation"
	FieldVideos         Field = "videos"
	FieldWelcomeSection Field = "welcomeSection"
	FieldStats          Field = "stats"
	FieldGallery        Field = "gallery"
	FieldLocations      Field = "locations"
	FieldFooter         Field = "footer"
)

// ArrayPath names one of the record's ordered lists. Top-level arrays are a
// single segment; nested ones use a dot path.
type ArrayPath string

const (
	ArrayVideos        ArrayPath = "videos"
	ArrayGalleryImages ArrayPath = "gallery.images"
	ArrayCities        ArrayPath = "locations.cities"
)

// Nested reports whether the path points inside a section.
func (p ArrayPath) Nested() bool {
	return strings.Contains(string(p), ".")
}

// PageEditor holds a working copy of one record. Changes stay local until
// Save commits them through the store. Every helper is a no-op while no
// record is open, and a failed change leaves the working copy untouched.
type PageEditor struct {
	store   *PageStore
	current *db.PageRecord
}

// NewPageEditor returns an editor with no record open.
func NewPageEditor(store *PageStore) *PageEditor {
	return &PageEditor{store: store}
}

// Open loads a deep copy of the record with the given id.
func (e *PageEditor) Open(id string) error {
	page, err := e.store.GetByID(id)
	if err != nil {
		e.current = nil
		return err
	}
	e.current = &page
	return nil
}

// Current returns a copy of the working record.
func (e *PageEditor) Current() (db.PageRecord, bool) {
	if e.current == nil {
		return db.PageRecord{}, false
	}
	return e.current.Clone(), true
}

// Discard drops the working copy without saving.
func (e *PageEditor) Discard() {
	e.current = nil
}

// Save commits the working copy. It reports whether the store changed.
func (e *PageEditor) Save() bool {
	if e.current == nil {
		return false
	}
	return e.store.UpdatePageData(e.current.ID, *e.current)
}

func (e *PageEditor) mutate(fn func(*db.PageRecord) error) error {
	if e.current == nil {
		return nil
	}
	next := e.current.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	e.current = &next
	return nil
}

// ChangeField sets a top-level field, or one named sub-field of it.
func (e *PageEditor) ChangeField(field Field, value json.RawMessage, subField string) error {
	return e.mutate(func(page *db.PageRecord) error {
		if subField == "" {
			return setWholeField(page, field, value)
		}
		return setSubField(page, field, subField, value)
	})
}

// ChangeArrayItem replaces element index of a top-level array, or one named
// sub-field of that element.
func (e *PageEditor) ChangeArrayItem(field ArrayPath, index int, value json.RawMessage, subField string) error {
	if e.current == nil {
		return nil
	}
	if field.Nested() {
		return fmt.Errorf("%w: %s is nested", ErrUnknownArray, field)
	}
	return e.changeItem(field, index, value, subField)
}

// ChangeNestedArrayItem is ChangeArrayItem for dot paths such as
// "gallery.images".
func (e *PageEditor) ChangeNestedArrayItem(path ArrayPath, index int, value json.RawMessage, subField string) error {
	if e.current == nil {
		return nil
	}
	if !path.Nested() {
		return fmt.Errorf("%w: %s is not nested", ErrUnknownArray, path)
	}
	return e.changeItem(path, index, value, subField)
}

func (e *PageEditor) changeItem(path ArrayPath, index int, value json.RawMessage, subField string) error {
	return e.mutate(func(page *db.PageRecord) error {
		arr, err := resolveArray(page, path)
		if err != nil {
			return err
		}
		if index < 0 || index >= arr.length() {
			return ErrIndexOutOfRange
		}
		if subField == "" {
			return arr.replace(index, value)
		}
		return arr.setField(index, subField, value)
	})
}

// AddArrayItem appends item to a top-level array.
func (e *PageEditor) AddArrayItem(field ArrayPath, item json.RawMessage) error {
	if e.current == nil {
		return nil
	}
	if field.Nested() {
		return fmt.Errorf("%w: %s is nested", ErrUnknownArray, field)
	}
	return e.addItem(field, item)
}

// AddNestedArrayItem appends item to a dot-path array.
func (e *PageEditor) AddNestedArrayItem(path ArrayPath, item json.RawMessage) error {
	if e.current == nil {
		return nil
	}
	if !path.Nested() {
		return fmt.Errorf("%w: %s is not nested", ErrUnknownArray, path)
	}
	return e.addItem(path, item)
}

func (e *PageEditor) addItem(path ArrayPath, item json.RawMessage) error {
	return e.mutate(func(page *db.PageRecord) error {
		arr, err := resolveArray(page, path)
		if err != nil {
			return err
		}
		return arr.append(item)
	})
}

// RemoveArrayItem deletes element index of a top-level array; later
// elements shift down.
func (e *PageEditor) RemoveArrayItem(field ArrayPath, index int) error {
	if e.current == nil {
		return nil
	}
	if field.Nested() {
		return fmt.Errorf("%w: %s is nested", ErrUnknownArray, field)
	}
	return e.removeItem(field, index)
}

// RemoveNestedArrayItem deletes element index of a dot-path array.
func (e *PageEditor) RemoveNestedArrayItem(path ArrayPath, index int) error {
	if e.current == nil {
		return nil
	}
	if !path.Nested() {
		return fmt.Errorf("%w: %s is not nested", ErrUnknownArray, path)
	}
	return e.removeItem(path, index)
}

func (e *PageEditor) removeItem(path ArrayPath, index int) error {
	return e.mutate(func(page *db.PageRecord) error {
		arr, err := resolveArray(page, path)
		if err != nil {
			return err
		}
		if index < 0 || index >= arr.length() {
			return ErrIndexOutOfRange
		}
		arr.remove(index)
		return nil
	})
}

// Edit operations accepted by Apply.
const (
	EditOpSet    = "set"
	EditOpAdd    = "add"
	EditOpRemove = "remove"
)

// PageEdit is one serialized editor call. Set with Field changes a flat
// field; set, add and remove with Path address an array.
type PageEdit struct {
	Op       string          `json:"op"`
	Field    string          `json:"field,omitempty"`
	Path     string          `json:"path,omitempty"`
	Index    *int            `json:"index,omitempty"`
	SubField string          `json:"subField,omitempty"`
	Value    json.RawMessage `json:"value,omitempty"`
}

// Apply dispatches a serialized edit to the matching helper.
func (e *PageEditor) Apply(edit PageEdit) error {
	path := ArrayPath(edit.Path)
	index := -1
	if edit.Index != nil {
		index = *edit.Index
	}

	switch edit.Op {
	case EditOpSet:
		if edit.Field != "" {
			return e.ChangeField(Field(edit.Field), edit.Value, edit.SubField)
		}
		if path.Nested() {
			return e.ChangeNestedArrayItem(path, index, edit.Value, edit.SubField)
		}
		return e.ChangeArrayItem(path, index, edit.Value, edit.SubField)
	case EditOpAdd:
		if path.Nested() {
			return e.AddNestedArrayItem(path, edit.Value)
		}
		return e.AddArrayItem(path, edit.Value)
	case EditOpRemove:
		if path.Nested() {
			return e.RemoveNestedArrayItem(path, index)
		}
		return e.RemoveArrayItem(path, index)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEditOp, edit.Op)
	}
}

func decodeValue(raw json.RawMessage, dst any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Errorf("%w: value is required", ErrInvalidValue)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return nil
}

// assign decodes raw into a fresh T and stores it, so whole-value updates
// replace rather than merge.
func assign[T any](raw json.RawMessage, dst *T) error {
	var value T
	if err := decodeValue(raw, &value); err != nil {
		return err
	}
	*dst = value
	return nil
}

func setWholeField(page *db.PageRecord, field Field, raw json.RawMessage) error {
	switch field {
	case FieldName:
		return assign(raw, &page.Name)
	case FieldSlug:
		return assign(raw, &page.Slug)
	case FieldNavigation:
		return assign(raw, &page.Navigation)
	case FieldVideos:
		return assign(raw, &page.Videos)
	case FieldWelcomeSection:
		return assign(raw, &page.WelcomeSection)
	case FieldStats:
		return assign(raw, &page.Stats)
	case FieldGallery:
		return assign(raw, &page.Gallery)
	case FieldLocations:
		return assign(raw, &page.Locations)
	case FieldFooter:
		return assign(raw, &page.Footer)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

func setSubField(page *db.PageRecord, field Field, subField string, raw json.RawMessage) error {
	switch field {
	case FieldGallery:
		if subField == "images" {
			return assign(raw, &page.Gallery.Images)
		}
	case FieldLocations:
		if subField == "cities" {
			return assign(raw, &page.Locations.Cities)
		}
	default:
		if target, ok := textFields(page, field)[subField]; ok {
			return assign(raw, target)
		}
	}
	return fmt.Errorf("%w: %s.%s", ErrUnknownField, field, subField)
}

// textFields maps the sub-field names of a flat section to the strings they
// address inside page.
func textFields(page *db.PageRecord, field Field) map[string]*string {
	switch field {
	case FieldNavigation:
		return map[string]*string{
			"facebookUrl":  &page.Navigation.FacebookURL,
			"instagramUrl": &page.Navigation.InstagramURL,
		}
	case FieldWelcomeSection:
		return map[string]*string{
			"welcomeText": &page.WelcomeSection.WelcomeText,
			"subtitle":    &page.WelcomeSection.Subtitle,
		}
	case FieldStats:
		return map[string]*string{
			"clientsCount":  &page.Stats.ClientsCount,
			"yearsOnMarket": &page.Stats.YearsOnMarket,
			"smilesCount":   &page.Stats.SmilesCount,
		}
	case FieldFooter:
		return map[string]*string{
			"facebookUrl":   &page.Footer.FacebookURL,
			"facebookText":  &page.Footer.FacebookText,
			"instagramUrl":  &page.Footer.InstagramURL,
			"instagramText": &page.Footer.InstagramText,
			"phoneNumber":   &page.Footer.PhoneNumber,
		}
	}
	return nil
}

type pageArray interface {
	length() int
	replace(index int, raw json.RawMessage) error
	setField(index int, field string, raw json.RawMessage) error
	append(raw json.RawMessage) error
	remove(index int)
}

func resolveArray(page *db.PageRecord, path ArrayPath) (pageArray, error) {
	switch path {
	case ArrayVideos:
		return &videoArray{items: &page.Videos}, nil
	case ArrayGalleryImages:
		return &imageArray{items: &page.Gallery.Images}, nil
	case ArrayCities:
		return &cityArray{items: &page.Locations.Cities}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownArray, path)
	}
}

type videoArray struct {
	items *[]db.Video
}

func (a *videoArray) length() int { return len(*a.items) }

func (a *videoArray) replace(index int, raw json.RawMessage) error {
	var video db.Video
	if err := decodeValue(raw, &video); err != nil {
		return err
	}
	(*a.items)[index] = video
	return nil
}

func (a *videoArray) setField(index int, field string, raw json.RawMessage) error {
	video := &(*a.items)[index]
	switch field {
	case "src":
		return decodeValue(raw, &video.Src)
	case "alt":
		return decodeValue(raw, &video.Alt)
	case "startTime":
		var start *float64
		if err := decodeValue(raw, &start); err != nil {
			return err
		}
		video.StartTime = start
		return nil
	default:
		return fmt.Errorf("%w: videos[].%s", ErrUnknownField, field)
	}
}

func (a *videoArray) append(raw json.RawMessage) error {
	var video db.Video
	if err := decodeValue(raw, &video); err != nil {
		return err
	}
	*a.items = append(*a.items, video)
	return nil
}

func (a *videoArray) remove(index int) {
	*a.items = append((*a.items)[:index], (*a.items)[index+1:]...)
}

type imageArray struct {
	items *[]db.Image
}

func (a *imageArray) length() int { return len(*a.items) }

func (a *imageArray) replace(index int, raw json.RawMessage) error {
	var image db.Image
	if err := decodeValue(raw, &image); err != nil {
		return err
	}
	(*a.items)[index] = image
	return nil
}

func (a *imageArray) setField(index int, field string, raw json.RawMessage) error {
	image := &(*a.items)[index]
	switch field {
	case "src":
		return decodeValue(raw, &image.Src)
	case "alt":
		return decodeValue(raw, &image.Alt)
	default:
		return fmt.Errorf("%w: gallery.images[].%s", ErrUnknownField, field)
	}
}

func (a *imageArray) append(raw json.RawMessage) error {
	var image db.Image
	if err := decodeValue(raw, &image); err != nil {
		return err
	}
	*a.items = append(*a.items, image)
	return nil
}

func (a *imageArray) remove(index int) {
	*a.items = append((*a.items)[:index], (*a.items)[index+1:]...)
}

type cityArray struct {
	items *[]string
}

func (a *cityArray) length() int { return len(*a.items) }

func (a *cityArray) replace(index int, raw json.RawMessage) error {
	return decodeValue(raw, &(*a.items)[index])
}

// Cities are plain strings and have no sub-fields.
func (a *cityArray) setField(_ int, field string, _ json.RawMessage) error {
	return fmt.Errorf("%w: locations.cities[].%s", ErrUnknownField, field)
}

func (a *cityArray) append(raw json.RawMessage) error {
	var city string
	if err := decodeValue(raw, &city); err != nil {
		return err
	}
	*a.items = append(*a.items, city)
	return nil
}

func (a *cityArray) remove(index int) {
	*a.items = append((*a.items)[:index], (*a.items)[index+1:]...)
}
