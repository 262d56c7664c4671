package sdi

import "sort"

// Backend is the subset of the rendering backend abstraction the registry's
// Draw needs. The full capability set lives in internal/backend; this
// narrower view keeps sdi from depending on backend construction details.
type Backend interface {
	Clear()
	FillRect(x, y, w, h int, c Color)
	FillRoundedRect(x, y, w, h, radius int, c Color)
	FillGradientRect(x, y, w, h, radius int, g Gradient)
	StrokeRoundedRect(x, y, w, h, radius, width int, c Color)
	DrawShadow(x, y, w, h, radius, level int)
	Blit(tex TextureID, x, y, w, h int)
	DrawText(text string, x, y, fontSize int, c Color)
}

// Registry owns every named scene object: a mutex-free map plus stable
// insertion bookkeeping (there is no concurrent access requirement here —
// the registry is driven by a single UI/render loop).
type Registry struct {
	objects map[string]*Object
	next    uint64
}

// NewRegistry creates an empty scene registry.
func NewRegistry() *Registry {
	return &Registry{objects: make(map[string]*Object)}
}

// Create inserts name with default field values (visible, non-overlay, z 0)
// if absent, and returns a pointer to it for in-place mutation. If name
// already exists its existing object is returned unchanged.
func (r *Registry) Create(name string) *Object {
	if obj, ok := r.objects[name]; ok {
		return obj
	}
	obj := defaultObject(r.next)
	r.next++
	ptr := &obj
	r.objects[name] = ptr
	return ptr
}

// Get returns the object named name, or nil if absent.
func (r *Registry) Get(name string) *Object {
	return r.objects[name]
}

// GetMut is an alias for Get: Object is always accessed through a pointer,
// so there is no separate mutable/immutable view in Go.
func (r *Registry) GetMut(name string) *Object {
	return r.Get(name)
}

// Contains reports whether name is registered.
func (r *Registry) Contains(name string) bool {
	_, ok := r.objects[name]
	return ok
}

// Remove deletes name from the registry. No-op if absent.
func (r *Registry) Remove(name string) {
	delete(r.objects, name)
}

// Draw renders every visible object to backend in (overlay, z, insertion)
// order: non-overlay objects first, ascending z, ties broken by creation
// order.
func (r *Registry) Draw(backend Backend) {
	visible := make([]*Object, 0, len(r.objects))
	for _, obj := range r.objects {
		if obj.Visible {
			visible = append(visible, obj)
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		a, b := visible[i], visible[j]
		if a.Overlay != b.Overlay {
			return !a.Overlay // non-overlay first
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.insertion < b.insertion
	})

	for _, obj := range visible {
		drawObject(backend, obj)
	}
}

func drawObject(backend Backend, obj *Object) {
	// Shadow sits under the fill, so it paints first.
	if obj.ShadowLevel > 0 {
		backend.DrawShadow(obj.X, obj.Y, obj.W, obj.H, obj.CornerRadius, obj.ShadowLevel)
	}
	if obj.Gradient != nil {
		backend.FillGradientRect(obj.X, obj.Y, obj.W, obj.H, obj.CornerRadius, *obj.Gradient)
	} else {
		backend.FillRoundedRect(obj.X, obj.Y, obj.W, obj.H, obj.CornerRadius, obj.Fill)
	}
	if obj.StrokeWidth > 0 {
		backend.StrokeRoundedRect(obj.X, obj.Y, obj.W, obj.H, obj.CornerRadius, obj.StrokeWidth, obj.StrokeColor)
	}
	if obj.Texture != 0 {
		backend.Blit(obj.Texture, obj.X, obj.Y, obj.W, obj.H)
	}
	if obj.Text != "" {
		const inset = 2
		backend.DrawText(obj.Text, obj.X+inset, obj.Y+inset, obj.FontSize, obj.TextColor)
	}
}
