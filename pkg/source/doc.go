// Package source loads radar item lists from files and HTTP endpoints.
//
// # Overview
//
// Three loaders cover the supported inputs:
//
//   - [ReadJSON] / [ReadCSV]: decode an item list from a reader
//   - [LoadFile]: load a .json or .csv file, dispatching on extension
//   - [Client.FetchItems]: fetch a JSON item list over HTTP with caching
//     and retry
//
// [Load] ties them together and dispatches on the source string: anything
// starting with http:// or https:// goes through the HTTP client,
// everything else is treated as a local file path.
//
// All loaders preserve input order. The layout engine places items in the
// order they arrive, so a stable source order is part of the deterministic
// output contract.
package source
