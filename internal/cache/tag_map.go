package cache

import "sort"

// typeTagMap is the static mapping from content-store document types to the
// cache tags their cached renders depend on. A testimonial renders on the
// homepage, hence the alias. Document types not present here fall back to
// invalidating every known tag (see AllTags): over-invalidation is preferred
// to stale content.
var typeTagMap = map[string][]string{
	"homepage":     {"content:homepage"},
	"siteSettings": {"content:siteSettings"},
	"service":      {"content:service"},
	"location":     {"content:location"},
	"project":      {"content:project"},
	"testimonial":  {"content:homepage"},
}

// TagsForType returns the cache tags for a document type. The second return
// value is false for unknown (or empty) types, which callers must treat as
// the invalidate-all fallback case.
func TagsForType(docType string) ([]string, bool) {
	tags, ok := typeTagMap[docType]
	return tags, ok
}

// AllTags returns the sorted union of every tag in the mapping table.
func AllTags() []string {
	set := make(map[string]struct{})
	for _, tags := range typeTagMap {
		for _, tag := range tags {
			set[tag] = struct{}{}
		}
	}

	all := make([]string, 0, len(set))
	for tag := range set {
		all = append(all, tag)
	}
	sort.Strings(all)
	return all
}

// MappedTypes returns the sorted document types the table knows about.
func MappedTypes() []string {
	types := make([]string, 0, len(typeTagMap))
	for docType := range typeTagMap {
		types = append(types, docType)
	}
	sort.Strings(types)
	return types
}

// TypesForTag returns the sorted document types whose cached renders depend
// on the given tag. This is the reverse of the mapping table: the entry for
// "content:homepage" holds both homepage and testimonial documents.
func TypesForTag(tag string) []string {
	var types []string
	for docType, tags := range typeTagMap {
		for _, t := range tags {
			if t == tag {
				types = append(types, docType)
				break
			}
		}
	}
	sort.Strings(types)
	return types
}
