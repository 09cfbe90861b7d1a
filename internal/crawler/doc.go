// Package crawler discovers morgue file URLs by spidering the public
// web pages of Dungeon Crawl Stone Soup servers.
//
// The Spider walks link graphs in rounds: every page in the current
// frontier is fetched, its anchors are collected, and the URLs not
// seen before become the next frontier. Rounds continue until the
// depth limit is reached. Requests are paced so the game servers,
// which are volunteer-run, never see bursts of traffic.
//
// Discovered URLs are flushed to a checkpoint file periodically during
// a round and again at the end of each round, so little work is lost
// when a long crawl is interrupted.
package crawler
