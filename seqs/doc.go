/*
Package seqs provides [Seq], a lazy pull-based sequence built on Go 1.23+ iterators.

Nothing runs until a terminal operation ([Seq.ToSlice], [Seq.ForEach], [FoldLeft], a range
loop over [Seq.All], ...) pulls elements. A Seq is single-pass; use [Seq.Duplicate] and its
relatives to read the same elements more than once.

It includes:

  - **Transformations**: [Map], [TryMap], [FlatMap], [Zip], [Zip3], [Zip4], [Unzip], [Cast], [OfType],
    [Seq.Filter], [Seq.Intersperse], [Seq.InsertAt], [Seq.DeleteBetween].
  - **Reversal**: [Seq.Reverse] is O(1) for sequences built from slices, lists and ranges
    ([Of], [FromList], [Range]) and materializes anything else.
  - **Duplication**: [Seq.Duplicate], [Seq.Triplicate], [Seq.Quadruplicate], [Seq.SplitAt],
    [Seq.Partition] share one buffer that only holds what the slowest copy has not read yet.
  - **Windowing**: [BatchBySize], [BatchWhile], [BatchUntil], [BatchBySizeAndTime], [Sliding], and the
    Window* variants that report why each [Window] closed.
  - **Rate control**: [Seq.XPer], [Seq.OnePer], [Seq.Debounce], [Seq.FixedDelay], [Seq.Jitter].
  - **Hot streams**: [HotStream] and the Schedule* functions run a sequence in the background and
    broadcast it to subscribers.
  - **Reductions**: [FoldLeft], [FoldRight], [ReduceAll], [ScanLeft], [ScanRight] with [Monoid].

# Error Handling

Every element may carry an error, following the (value, error) pairing of iter.Seq2.
[TryMap], [Seq.TryFilter], [Cast] and [Retry] produce failed elements; the other combinators pass
them through. [Seq.Recover] and [RecoverAs] turn them back into values. Terminal operations stop
at the first failed element and return its error, except [Seq.CollectAll], which keeps going and
returns all of them combined.

	for v, err := range seqs.TryMap(seqs.Of("1", "x", "3"), strconv.Atoi).All() {
		if err != nil {
			// handle the failed element, the loop continues
			continue
		}
		use(v)
	}

# Concurrency

Only hot streams run on other goroutines. Everything else executes on the goroutine that pulls,
and duplicated sequences share one buffer: drive them from one goroutine at a time. A duplicated
sequence that is dropped unread is detached once the garbage collector reclaims it.

# Time

Time-based operators read a [clock.Clock]. Pass [WithClock] (or [WithHotClock]) with a
[clock.Fake] to make them deterministic in tests.
*/
package seqs
