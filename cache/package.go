/*
Package cache provides the shared key/value store backing the day and
summary caches, plus the named locks that serialise cache misses. It
should not be of any concern to the callee where this store is, simply
that it is shared by every process serving the same data.

Eventual consistency of the cached items is promised, but nothing more.
*/
package cache
