package usecase

const VerifyBatchSize = verifyBatchSize
