package value

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is an insertion-ordered mapping with unique keys.
type Object struct {
	members []Member
	index   map[string]int
}

func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// ObjectOf builds an object value from members in order. Repeated keys keep
// the first position and the last value.
func ObjectOf(members ...Member) Value {
	o := NewObject()
	for _, m := range members {
		o.Set(m.Key, m.Value)
	}
	return FromObject(o)
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.members[i].Value, true
}

func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set inserts key at the end, or overwrites it in place when present.
func (o *Object) Set(key string, v Value) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	i, ok := o.index[key]
	if !ok {
		return false
	}
	o.members = append(o.members[:i], o.members[i+1:]...)
	delete(o.index, key)
	for j := i; j < len(o.members); j++ {
		o.index[o.members[j].Key] = j
	}
	return true
}

// Members returns the members in insertion order. The slice is owned by o.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	return o.members
}

func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	for _, m := range o.Members() {
		keys = append(keys, m.Key)
	}
	return keys
}

func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	for i, m := range o.Members() {
		om := other.members[i]
		if m.Key != om.Key || !m.Value.Equal(om.Value) {
			return false
		}
	}
	return true
}

// Clone deep-copies the object.
func (o *Object) Clone() *Object {
	c := o.ShallowCopy()
	for i := range c.members {
		c.members[i].Value = c.members[i].Value.Clone()
	}
	return c
}

// ShallowCopy copies the member table without copying child values. The path
// engine uses it for copy-on-write along a mutated path.
func (o *Object) ShallowCopy() *Object {
	c := &Object{
		members: make([]Member, o.Len()),
		index:   make(map[string]int, o.Len()),
	}
	copy(c.members, o.Members())
	for i, m := range c.members {
		c.index[m.Key] = i
	}
	return c
}
