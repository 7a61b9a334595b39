// Package hash provides the CRC32-Castagnoli checksum used for blob upload
// integrity and exposed as the CRC32C algorithm.
//
// # CRC32-Castagnoli (CRC32C)
//
//   - Hardware acceleration on x86 (SSE4.2) and ARM (CRC extension)
//   - Superior error detection compared to CRC32-IEEE
//   - Industry standard (iSCSI, Btrfs, RocksDB, LevelDB, S3 checksums)
//
// # Usage
//
// For one-shot checksums:
//
//	checksum := hash.CRC32C(data)
//
// For streaming checksums:
//
//	h := hash.NewCRC32C()
//	h.Update(chunk1)
//	h.Update(chunk2)
//	checksum := h.Sum32()
//
// Unlike hash/crc32, Sum appends the checksum in little-endian byte order.
package hash
