package board

// XOSCCrystalFreq is the frequency of the external crystal in Hz.
const XOSCCrystalFreq uint32 = 12_000_000
