// Package sortkey builds phonetic sort keys for song titles.
//
// Titles in the catalog freely mix Chinese characters and Latin words. A
// Builder turns such a title into a sequence of tokens that compare the way
// a reader would alphabetize the title:
//
//	b := sortkey.Default()
//	b.Build("测试 Song") // []string{"Ce", "Shi", "Song"}
//	b.Build("测试Song")  // same: the script change splits the segment
//
// Each Chinese character becomes one tone-less pinyin syllable, and each Latin
// run becomes one title-cased word, so both kinds of token interleave under
// ordinary string comparison.
//
// # Overrides
//
// Some characters have a dictionary reading that differs from the one sung in
// church. An override map replaces the reading for those characters:
//
//	b := sortkey.New(map[rune]string{'祢': "nǐ,mí"})
//
// When a reading lists alternatives separated by commas, the first one wins.
package sortkey
