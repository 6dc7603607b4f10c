package query

import "github.com/samber/lo"

// Group is one partition of a grouped list
type Group[T any] struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
	Items []T    `json:"items"`
}

// GroupByKeys partitions items by keyOf. Groups follow the order of keys, one per
// key even when empty. Records whose key is not in keys land in trailing groups in
// first-appearance order, so every record is in exactly one group.
func GroupByKeys[T any](items []T, keys []string, keyOf func(T) string) []Group[T] {
	buckets := lo.GroupBy(items, keyOf)
	groups := make([]Group[T], 0, len(keys))
	seen := make(map[string]bool, len(keys))

	add := func(key string) {
		if seen[key] {
			return
		}
		seen[key] = true
		members := buckets[key]
		if members == nil {
			members = []T{}
		}
		groups = append(groups, Group[T]{Key: key, Label: key, Count: len(members), Items: members})
	}

	for _, key := range keys {
		add(key)
	}
	for _, item := range items {
		add(keyOf(item))
	}
	return groups
}

// NonEmpty drops groups without records
func NonEmpty[T any](groups []Group[T]) []Group[T] {
	return lo.Filter(groups, func(g Group[T], _ int) bool {
		return len(g.Items) > 0
	})
}

// Label names each group through labelOf; keys it doesn't know keep the raw key
func Label[T any](groups []Group[T], labelOf map[string]string) []Group[T] {
	for i := range groups {
		if label, ok := labelOf[groups[i].Key]; ok {
			groups[i].Label = label
		}
	}
	return groups
}
