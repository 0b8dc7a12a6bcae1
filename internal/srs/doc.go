// Package srs implements the spaced-repetition scheduling engine: interval
// computation from quality ratings, due-set classification against civil
// dates, calendar and category due-count aggregation, and selection
// preservation across list recomputations.
//
// Everything here is pure over an item snapshot; persistence lives in the
// repository layer and is driven by the services.
package srs
