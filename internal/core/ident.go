package core

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// idPrefix keeps generated ids legal identifier tokens (never digit-first).
const idPrefix = "id_"

// pathSeparator joins ancestor titles before hashing. Titles containing the
// separator are tolerated: the hash is one-way and the contract only asks
// for hashing behavior, not proven non-collision.
const pathSeparator = "/"

// IDForPath derives a deterministic identifier from the ordered titles on
// the path from the collection root to a node. Equal paths always yield
// equal ids; distinct paths collide only with SHA-1 probability.
func IDForPath(titles []string) string {
	sum := sha1.Sum([]byte(strings.Join(titles, pathSeparator)))
	return idPrefix + hex.EncodeToString(sum[:])
}

// AssignIDs walks items in document order and fills in missing ids.
// An item that already carries an id contributes that id to its descendants'
// paths; otherwise its title is pushed and the id is computed from the
// accumulated path. Sibling branches never share path segments beyond their
// common ancestors, and running the pass twice leaves every id unchanged.
//
// The pass also tags each item with its Kind. It must run once per data
// load before the first render, because rendering and restoration key off
// the ids it produces.
func AssignIDs(items []*Item, ancestors []string) {
	for _, item := range items {
		segment := item.Title
		if item.ID != "" {
			segment = item.ID
		}
		path := append(append([]string(nil), ancestors...), segment)
		if item.ID == "" {
			item.ID = IDForPath(path)
		}
		item.Kind = classify(item)
		AssignIDs(item.Items, path)
	}
}

func classify(item *Item) ItemKind {
	if item.Text != "" || item.Code != "" || len(item.Items) > 0 {
		return KindExpandable
	}
	return KindLeaf
}
