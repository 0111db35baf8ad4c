package nskeyed

// decoderFunc decodes one encoded object of a recognized archived class.
type decoderFunc func(s *decodeState, object map[string]any) (any, error)

// classDecoders maps archived class names to their decoding strategy. The
// vocabulary is fixed by the archive format; matching is exact and
// case-sensitive. Composite record classes all share the generic
// member-by-member strategy.
var classDecoders map[string]decoderFunc

func init() {
	classDecoders = map[string]decoderFunc{
		"BackgroundItemContainer": decodeComposite,
		"BackgroundItems":         decodeComposite,
		"BackgroundLoginItem":     decodeComposite,
		"Bookmark":                decodeComposite,
		"BTMUserSettings":         decodeComposite,
		"ItemRecord":              decodeComposite,
		"NSArray":                 decodeArray,
		"NSDictionary":            decodeDictionary,
		"NSHashTable":             decodeHashTable,
		"NSMutableArray":          decodeArray,
		"NSMutableDictionary":     decodeDictionary,
		"NSMutableSet":            decodeSet,
		"NSSet":                   decodeSet,
		"NSURL":                   decodeURL,
		"NSUUID":                  decodeUUID,
		"Storage":                 decodeComposite,
	}
}

// decodeState carries the object table and the bookkeeping of one decode
// call. active holds the indices currently being resolved, so that a
// reference chain revisiting one of them fails instead of recursing forever.
// memo holds indices that finished decoding; the same object is frequently
// referenced from several places and must decode identically each time.
type decodeState struct {
	objects []any
	active  map[int]struct{}
	memo    map[int]any
}

func newDecodeState(objects []any) *decodeState {
	return &decodeState{
		objects: objects,
		active:  map[int]struct{}{},
		memo:    map[int]any{},
	}
}

// decodeObject decodes a single encoded value, chasing references through
// the object table first. This makes shared and back-referenced objects
// transparent to callers.
func (s *decodeState) decodeObject(encoded any) (any, error) {
	if index, ok := referenceIndex(encoded); ok {
		return s.decodeIndex(index)
	}

	return s.decodeValue(encoded)
}

// decodeIndex resolves and decodes the object at a table index, with cycle
// detection and memoization.
func (s *decodeState) decodeIndex(index int) (any, error) {
	if decoded, ok := s.memo[index]; ok {
		return decoded, nil
	}

	if _, ok := s.active[index]; ok {
		return nil, &CyclicReferenceError{Index: index}
	}

	referenced, err := s.resolve(index)
	if err != nil {
		return nil, err
	}

	s.active[index] = struct{}{}
	decoded, err := s.decodeObject(referenced)
	delete(s.active, index)

	if err != nil {
		return nil, err
	}

	s.memo[index] = decoded

	return decoded, nil
}

// decodeValue decodes a non-reference encoded value: a primitive, a plain
// sequence, or a mapping that may carry a $class reference.
func (s *decodeState) decodeValue(encoded any) (any, error) {
	if decoded, ok := normalize(encoded); ok {
		return decoded, nil
	}

	switch v := encoded.(type) {
	case map[string]any:
		return s.decodeMapping(v)

	case []any:
		decoded := make([]any, 0, len(v))

		for _, element := range v {
			decodedElement, err := s.decodeObject(element)
			if err != nil {
				return nil, err
			}

			decoded = append(decoded, decodedElement)
		}

		return decoded, nil
	}

	return nil, &UnsupportedTypeError{Value: encoded}
}

// decodeMapping routes an encoded mapping to the strategy registered for its
// class name. Mappings without a $class member, and mappings whose class
// descriptor exposes no $classname, decode member-by-member as generic
// mappings; the class descriptors themselves take that path.
func (s *decodeState) decodeMapping(object map[string]any) (any, error) {
	encodedClass, ok := object["$class"]
	if !ok || isEmptyValue(encodedClass) {
		return decodeComposite(s, object)
	}

	decodedClass, err := s.decodeObject(encodedClass)
	if err != nil {
		return nil, err
	}

	descriptor, ok := decodedClass.(map[string]any)
	if !ok {
		return nil, &UnsupportedTypeError{Value: decodedClass}
	}

	name, ok := descriptor["$classname"].(string)
	if !ok || name == "" {
		return decodeComposite(s, object)
	}

	decode, ok := classDecoders[name]
	if !ok {
		return nil, &UnsupportedClassError{Name: name}
	}

	return decode(s, object)
}
