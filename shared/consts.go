package shared

// OwnerReadWriteExec is a standard owner read / write / exec file permission.
const OwnerReadWriteExec = 0o700

// OwnerReadWrite is a standard owner read / write file permission.
const OwnerReadWrite = 0o600

// MaxBitWidth is the widest value accepted by a single bit write.
const MaxBitWidth = 32

// Terminator is written after every memory sink write.
const Terminator byte = 0
