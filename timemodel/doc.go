// Package timemodel produces the global timeslot length and
// hyperperiod the rest of the engine operates on (spec §4.1), and
// renormalizes every duration in the data model to integer timeslot
// units in place.
package timemodel
